package browse

import (
	"context"
	"time"

	"github.com/matst80/slask-jewelry/pkg/tracking"
	"github.com/matst80/slask-jewelry/pkg/types"
	"github.com/matst80/slask-jewelry/pkg/urlstate"
	"go.uber.org/zap"
)

const DefaultDebounce = 400 * time.Millisecond

type options struct {
	ctx          context.Context
	logger       *zap.Logger
	defaultLimit int
	debounce     time.Duration
	tracker      tracking.Tracker
	binding      *urlstate.Binding
}

type Option func(*options)

// WithContext sets the base context of every request; cancelling it
// cancels whatever is in flight.
func WithContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithDefaultLimit(n int) Option {
	return func(o *options) { o.defaultLimit = n }
}

func WithDebounce(d time.Duration) Option {
	return func(o *options) { o.debounce = d }
}

func WithTracker(t tracking.Tracker) Option {
	return func(o *options) { o.tracker = t }
}

// WithURL binds the browser to a location. The binding seeds the state once
// on Start and is rewritten after every user-driven change.
func WithURL(b *urlstate.Binding) Option {
	return func(o *options) { o.binding = b }
}

func buildOptions(opts []Option) options {
	o := options{
		ctx:          context.Background(),
		logger:       zap.NewNop(),
		defaultLimit: types.DefaultLimit,
		debounce:     DefaultDebounce,
		tracker:      tracking.Nop{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.defaultLimit < 1 {
		o.defaultLimit = types.DefaultLimit
	}
	return o
}
