package messaging

import (
	"carerouter-service/internal/app/config"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const connectionName = "carerouter-service"

// BrokerURL builds the amqp URI. The default vhost "/" is left implicit,
// any other vhost is path escaped.
func BrokerURL(driverConfig *config.DriverConfig) string {
	broker := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(driverConfig.RabbitMQ.Username, driverConfig.RabbitMQ.Password),
		Host:   net.JoinHostPort(driverConfig.RabbitMQ.Host, driverConfig.RabbitMQ.Port),
		Path:   "/",
	}
	if vhost := driverConfig.RabbitMQ.VHost; vhost != "" && vhost != "/" {
		broker.Path = "/" + vhost
		broker.RawPath = "/" + url.PathEscape(vhost)
	}
	return broker.String()
}

// NewRabbitMQ dials the broker that carries booking events.
func NewRabbitMQ(driverConfig *config.DriverConfig) (*amqp091.Connection, error) {
	conn, err := amqp091.DialConfig(BrokerURL(driverConfig), amqp091.Config{
		Heartbeat: 10 * time.Second,
		Properties: amqp091.Table{
			"connection_name": connectionName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq %s: %w", driverConfig.RabbitMQ.Host, err)
	}
	return conn, nil
}

// OpenQueue opens a channel and declares a durable queue on it. Publishers
// use the default exchange, so the queue name doubles as the routing key.
func OpenQueue(conn *amqp091.Connection, queue string) (*amqp091.Channel, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}
	if _, err := channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		channel.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return channel, nil
}
