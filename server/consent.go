/******************************************************************************
 *
 *  Description :
 *
 *    Mutual-consent gate: two users may exchange messages only when each
 *    follows the other.
 *
 *****************************************************************************/

package main

import (
	"context"

	"github.com/chatline/relay/server/store"
	"github.com/chatline/relay/server/store/types"
)

// MayExchange reports whether users a and b are mutual followers. Both edges
// must exist; a one-way follow is not enough. The check is symmetric in its
// arguments.
func MayExchange(ctx context.Context, a, b types.Uid) (bool, error) {
	forward, err := store.Follows.Exists(ctx, a, b)
	if err != nil {
		return false, err
	}
	if !forward {
		return false, nil
	}

	backward, err := store.Follows.Exists(ctx, b, a)
	if err != nil {
		return false, err
	}
	return backward, nil
}
