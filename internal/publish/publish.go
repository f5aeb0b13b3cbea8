package publish

import (
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/pebbe/zmq4"

	"uecv-sensor-go/internal/cloud"
)

// Publisher sends assembled point clouds over a PUSH socket. The
// socket is not thread safe, so Publish serializes callers; frame
// workers may therefore share one Publisher.
type Publisher struct {
	mu     sync.Mutex
	socket *zmq4.Socket
}

func New(endpoint string) (*Publisher, error) {
	socket, err := zmq4.NewSocket(zmq4.PUSH)
	if err != nil {
		return nil, err
	}
	if err := socket.Bind(endpoint); err != nil {
		_ = socket.Close()
		return nil, err
	}
	return &Publisher{socket: socket}, nil
}

func (p *Publisher) Publish(c *cloud.Cloud) error {
	payload, err := cbor.Marshal(c)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err = p.socket.SendBytes(payload, zmq4.DONTWAIT)
	return err
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.socket.Close()
}
