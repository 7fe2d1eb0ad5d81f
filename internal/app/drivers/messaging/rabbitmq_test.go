package messaging

import (
	"carerouter-service/internal/app/config"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerURL(t *testing.T) {
	tests := []struct {
		name      string
		vhost     string
		password  string
		wantVHost string
	}{
		{"Default vhost", "", "guest", "/"},
		{"Explicit root vhost", "/", "guest", "/"},
		{"Named vhost", "carerouter", "guest", "carerouter"},
		{"Password with reserved characters", "", "p@ss:w/rd", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.DriverConfig{}
			cfg.RabbitMQ.Host = "broker.local"
			cfg.RabbitMQ.Port = "5672"
			cfg.RabbitMQ.Username = "guest"
			cfg.RabbitMQ.Password = tt.password
			cfg.RabbitMQ.VHost = tt.vhost

			uri, err := amqp091.ParseURI(BrokerURL(cfg))
			require.NoError(t, err)
			assert.Equal(t, "broker.local", uri.Host)
			assert.Equal(t, 5672, uri.Port)
			assert.Equal(t, "guest", uri.Username)
			assert.Equal(t, tt.password, uri.Password)
			assert.Equal(t, tt.wantVHost, uri.Vhost)
		})
	}
}
