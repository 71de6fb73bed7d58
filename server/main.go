/******************************************************************************
 *
 *  Description :
 *
 *    Setup & initialization of the relay: config, storage, authentication,
 *    push handlers, HTTP listener, graceful shutdown.
 *
 *****************************************************************************/

package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	jcr "github.com/tinode/jsonco"

	"github.com/chatline/relay/server/auth"
	"github.com/chatline/relay/server/auth/token"
	_ "github.com/chatline/relay/server/db/mongodb"
	"github.com/chatline/relay/server/logs"
	"github.com/chatline/relay/server/push"
	_ "github.com/chatline/relay/server/push/stdout"
	"github.com/chatline/relay/server/store"
)

const (
	// currentVersion is the version of the relay reported to clients.
	currentVersion = "0.1"

	// Default maximum size of an inbound wire message, 256 KB.
	defaultMaxMessageSize = 1 << 18

	// Base URL path the websocket endpoint is mounted at.
	defaultApiPath = "/v0/channels"
)

var globals struct {
	sessionStore *SessionStore
	presence     *PresenceRegistry
	router       *ChannelRouter
	auth         auth.AuthHandler

	statsUpdate chan *varUpdate

	maxMessageSize int64
}

type configType struct {
	// HTTP(S) address:port to listen on.
	Listen string `json:"listen"`
	// URL path the websocket endpoint is served at.
	ApiPath string `json:"api_path"`
	// URL path for exposing runtime stats. Disabled if the path is blank or "-".
	ExpvarPath string `json:"expvar"`
	// Maximum message size allowed from a client.
	MaxMessageSize int64 `json:"max_message_size"`
	// Snowflake worker id of this process, 0-1023.
	WorkerID int `json:"worker_id"`
	// Configuration of the bearer-token authenticator.
	AuthConfig struct {
		Token json.RawMessage `json:"token"`
	} `json:"auth_config"`
	// Configuration of the storage facade and DB adapters.
	StoreConfig json.RawMessage `json:"store_config"`
	// Configuration of push notification handlers.
	Push json.RawMessage `json:"push"`
}

func main() {
	logs.Info.Printf("Relay v%s pid=%d started with processes: %d", currentVersion, os.Getpid(),
		runtime.GOMAXPROCS(runtime.NumCPU()))

	var configfile = flag.String("config", "./relay.conf", "Path to config file.")
	var listenOn = flag.String("listen", "", "Override address and port to listen on.")
	flag.Parse()

	logs.Info.Printf("Using config from '%s'", *configfile)

	var config configType
	if file, err := os.Open(*configfile); err != nil {
		logs.Err.Fatalln("Failed to read config file:", err)
	} else {
		jr := jcr.New(file)
		if err = json.NewDecoder(jr).Decode(&config); err != nil {
			switch jerr := err.(type) {
			case *json.UnmarshalTypeError:
				lnum, cnum, _ := jr.LineAndChar(jerr.Offset)
				logs.Err.Fatalf("Unmarshall error in config file in %s at %d:%d (offset %d bytes): %s",
					jerr.Field, lnum, cnum, jerr.Offset, jerr.Error())
			case *json.SyntaxError:
				lnum, cnum, _ := jr.LineAndChar(jerr.Offset)
				logs.Err.Fatalf("Syntax error in config file at %d:%d (offset %d bytes): %s",
					lnum, cnum, jerr.Offset, jerr.Error())
			default:
				logs.Err.Fatalln("Failed to parse config file:", err)
			}
		}
		file.Close()
	}

	if *listenOn != "" {
		config.Listen = *listenOn
	}
	if config.Listen == "" {
		config.Listen = ":6060"
	}
	if config.ApiPath == "" {
		config.ApiPath = defaultApiPath
	}

	if err := store.Store.Open(config.WorkerID, config.StoreConfig); err != nil {
		logs.Err.Fatalln("Failed to connect to DB:", err)
	}
	logs.Info.Println("DB adapter opened:", store.Store.GetAdapterName())
	defer func() {
		store.Store.Close()
		logs.Info.Println("Closed database connection(s)")
	}()

	tokenAuth := &token.Authenticator{}
	if err := tokenAuth.Init(config.AuthConfig.Token, "token"); err != nil {
		logs.Err.Fatalln("Failed to init token authenticator:", err)
	}
	globals.auth = tokenAuth

	if len(config.Push) > 0 {
		if enabled, err := push.Init(config.Push); err != nil {
			logs.Err.Fatalln("Failed to initialize push notifications:", err)
		} else if len(enabled) > 0 {
			logs.Info.Println("Push handlers:", enabled)
		}
	}
	defer func() {
		push.Stop()
		logs.Info.Println("Stopped push notifications")
	}()

	globals.sessionStore = NewSessionStore()
	globals.presence = NewPresenceRegistry()
	globals.router = NewChannelRouter()
	globals.maxMessageSize = config.MaxMessageSize
	if globals.maxMessageSize <= 0 {
		globals.maxMessageSize = defaultMaxMessageSize
	}

	statsRegisterInt("LiveSessions")
	statsRegisterInt("TotalSessions")
	statsRegisterInt("LiveSubscriptions")
	statsRegisterInt("IncomingMessagesWebsockTotal")
	statsRegisterInt("OutgoingMessagesWebsockTotal")
	statsRegisterInt("ChatMessagesPersistedTotal")
	statsRegisterInt("NotificationsPersistedTotal")
	statsRegisterInt("CtrlCodesTotal2xx")
	statsRegisterInt("CtrlCodesTotal4xx")
	statsRegisterInt("CtrlCodesTotal5xx")

	mux := http.NewServeMux()
	mux.HandleFunc(config.ApiPath, serveWebSocket)
	statsInit(mux, config.ExpvarPath)

	if err := listenAndServe(config.Listen, mux, signalHandler()); err != nil {
		logs.Err.Fatalln(err)
	}
}

// listenAndServe runs the HTTP server until the stop channel fires, then
// shuts it down gracefully: no new connections, live sessions told to
// disconnect, stats updater stopped.
func listenAndServe(addr string, mux *http.ServeMux, stop <-chan bool) error {
	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	shuttingDown := make(chan bool)
	go func() {
		<-stop

		// Give sessions 2 seconds to finish.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logs.Err.Println("HTTP server failed to terminate gracefully", err)
		}

		globals.sessionStore.Shutdown()
		statsShutdown()
		shuttingDown <- true
	}()

	logs.Info.Println("Listening for client connections on", addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}

	<-shuttingDown
	return nil
}

// signalHandler converts SIGINT/SIGTERM into a message on the returned channel.
func signalHandler() <-chan bool {
	stop := make(chan bool)
	signchan := make(chan os.Signal, 1)
	signal.Notify(signchan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-signchan
		logs.Info.Println("Signal received:", sig)
		stop <- true
	}()

	return stop
}
