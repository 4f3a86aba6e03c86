package device

import (
	"github.com/sirupsen/logrus"

	clientModbus "github.com/tetragramaton/gasflow-go/internal/client/modbus"
)

// Options are the collaborators a driver opens with.
type Options struct {
	Transport Transport
	Logger    logrus.FieldLogger
}

type Option func(*Options)

// WithTransport replaces the default goburrow RTU transport.
func WithTransport(tr Transport) Option {
	return func(o *Options) { o.Transport = tr }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) { o.Logger = l }
}

// Resolve applies opts over the defaults.
func Resolve(opts ...Option) Options {
	o := Options{}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.Logger == nil {
		o.Logger = DiscardLogger()
	}
	if o.Transport == nil {
		o.Transport = clientModbus.NewRTUTransport(clientModbus.RTUOptions{})
	}
	return o
}
