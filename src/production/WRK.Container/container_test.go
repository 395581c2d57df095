package container

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	config "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Config"
	logger "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Logger"
	notifier "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Notifier"
)

func TestShutdownRunsCleanupInReverse(t *testing.T) {
	c := newContainer(config.DatabaseConfig{}, logger.Nop())

	var order []string
	c.AddCleanupFunc(func(context.Context) error { order = append(order, "mongo"); return nil })
	c.AddCleanupFunc(func(context.Context) error { order = append(order, "redis"); return errors.New("already closed") })
	c.AddCleanupFunc(func(context.Context) error { order = append(order, "mqtt"); return nil })

	assert.NoError(t, c.Shutdown(context.Background()))
	assert.Equal(t, []string{"mqtt", "redis", "mongo"}, order)

	// Second shutdown is a no-op
	assert.NoError(t, c.Shutdown(context.Background()))
	assert.Len(t, order, 3)
}

func TestOptionalDependenciesDisabled(t *testing.T) {
	c := &ApiContainer{
		Container: newContainer(config.DatabaseConfig{}, logger.Nop()),
		config:    &config.Config{},
	}

	limiter, err := c.GetRateLimiter(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, limiter)

	n, err := c.GetNotifier()
	assert.NoError(t, err)
	assert.Equal(t, notifier.Noop{}, n)
}
