package util_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warden-authz/warden/util"
)

func TestPublishDetachesCallerContext(t *testing.T) {
	bus := util.NewEventBus()
	release := make(chan struct{})
	handlerCtxErr := make(chan error, 1)

	bus.Subscribe("policy.granted", func(ctx context.Context, event util.Event) error {
		<-release
		handlerCtxErr <- ctx.Err()
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	bus.Publish(ctx, "policy.granted", nil)

	// The publisher's request finishes before the handler runs.
	cancel()
	close(release)

	select {
	case err := <-handlerCtxErr:
		assert.NoError(t, err, "handler must not observe the publisher's cancellation")
	case <-time.After(2 * time.Second):
		require.Fail(t, "handler never ran")
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	bus := util.NewEventBus()
	bus.Publish(context.Background(), "nobody.listens", "payload")
}
