// =================================================================================
//
//			mx-alias - https://www.foxhollow.cc/projects/mx-alias/
//
//		 mx-alias reads the card routing of a digital mixing console and
//	  names the matching audio interface ports on the recording host
//
//		 Copyright (c) 2024 Steve Cross <flip@foxhollow.cc>
//
//			Licensed under the Apache License, Version 2.0 (the "License");
//			you may not use this file except in compliance with the License.
//			You may obtain a copy of the License at
//
//			     http://www.apache.org/licenses/LICENSE-2.0
//
//			Unless required by applicable law or agreed to in writing, software
//			distributed under the License is distributed on an "AS IS" BASIS,
//			WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//			See the License for the specific language governing permissions and
//			limitations under the License.
//
// =================================================================================

// Package console talks to X32 and XAir consoles over OSC/UDP.
package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"slices"
	"sync"
	"time"

	"github.com/hypebeast/go-osc/osc"

	"mx-alias/mixer"
	"mx-alias/util"
)

var (
	ErrTimeout = errors.New("console did not answer")
	ErrClosed  = errors.New("console connection closed")
)

// renewal message that keeps the console pushing parameter changes to us
const addressXRemote = "/xremote"

type Options struct {
	// Timeout is how long to wait for a single reply before resending.
	Timeout time.Duration
	// Retries is how many times a query is resent before giving up.
	Retries int
	// KeepAlive is the /xremote renewal interval while subscriptions exist.
	// Consoles drop remote clients after 10 seconds.
	KeepAlive time.Duration
}

func DefaultOptions() Options {
	return Options{
		Timeout:   500 * time.Millisecond,
		Retries:   3,
		KeepAlive: 9 * time.Second,
	}
}

// Client is a mixer.Dispatcher over a UDP connection to one console.
type Client struct {
	address string
	options Options
	conn    net.Conn

	mu            sync.Mutex
	waiters       map[mixer.Node][]chan mixer.Value
	subscriptions map[mixer.Subscription]map[mixer.Node]bool
	cache         map[mixer.Node]mixer.Value
	stopKeepAlive chan struct{}
	closed        bool
	done          chan struct{}
}

// Dial connects to a console at host:port and starts receiving replies.
func Dial(ctx context.Context, address string, options Options) (*Client, error) {
	defaults := DefaultOptions()
	if options.Timeout <= 0 {
		options.Timeout = defaults.Timeout
	}
	if options.Retries < 0 {
		options.Retries = 0
	}
	if options.KeepAlive <= 0 {
		options.KeepAlive = defaults.KeepAlive
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "udp", address)
	if err != nil {
		return nil, fmt.Errorf("connect to console %s: %w", address, err)
	}

	client := &Client{
		address:       address,
		options:       options,
		conn:          conn,
		waiters:       make(map[mixer.Node][]chan mixer.Value),
		subscriptions: make(map[mixer.Subscription]map[mixer.Node]bool),
		cache:         make(map[mixer.Node]mixer.Value),
		done:          make(chan struct{}),
	}

	go client.receiveLoop()

	slog.Info("Connected to console at " + address)

	return client, nil
}

func (client *Client) Address() string {
	return client.address
}

//
// mixer.Dispatcher
//

func (client *Client) Query(ctx context.Context, nodes ...mixer.Node) ([]mixer.Value, error) {
	return mixer.Resolve(ctx, len(nodes), func(ctx context.Context, i int) (mixer.Value, error) {
		return client.get(ctx, nodes[i])
	})
}

func (client *Client) AddAndQuery(ctx context.Context, sub mixer.Subscription, nodes ...mixer.Node) ([]mixer.Value, error) {
	client.mu.Lock()
	if client.closed {
		client.mu.Unlock()
		return nil, ErrClosed
	}

	held, ok := client.subscriptions[sub]
	if !ok {
		held = make(map[mixer.Node]bool)
		client.subscriptions[sub] = held
	}
	for _, node := range nodes {
		held[node] = true
	}

	if client.stopKeepAlive == nil {
		client.stopKeepAlive = make(chan struct{})
		go client.keepAlive(client.stopKeepAlive)
	}
	client.mu.Unlock()

	slog.Debug(fmt.Sprintf("Subscription %s holds %d nodes", sub, len(nodes)))

	return client.Query(ctx, nodes...)
}

func (client *Client) Remove(sub mixer.Subscription, nodes ...mixer.Node) {
	client.mu.Lock()
	defer client.mu.Unlock()

	held, ok := client.subscriptions[sub]
	if !ok {
		return
	}

	for _, node := range nodes {
		delete(held, node)
	}

	if len(held) == 0 {
		delete(client.subscriptions, sub)
	}

	for node := range client.cache {
		if !client.subscribedLocked(node) {
			delete(client.cache, node)
		}
	}

	if len(client.subscriptions) == 0 && client.stopKeepAlive != nil {
		close(client.stopKeepAlive)
		client.stopKeepAlive = nil
	}
}

func (client *Client) Set(node mixer.Node, value mixer.Value) error {
	message := osc.NewMessage(string(node))
	if arg := value.Arg(); arg != nil {
		message.Append(arg)
	}

	if err := client.send(message); err != nil {
		return err
	}

	client.mu.Lock()
	if client.subscribedLocked(node) {
		client.cache[node] = value
	}
	client.mu.Unlock()

	return nil
}

// Close stops the receive loop and closes the socket. Closing twice is harmless.
func (client *Client) Close() error {
	client.mu.Lock()
	if client.closed {
		client.mu.Unlock()
		return nil
	}

	client.closed = true
	if client.stopKeepAlive != nil {
		close(client.stopKeepAlive)
		client.stopKeepAlive = nil
	}
	close(client.done)
	client.mu.Unlock()

	slog.Info("Closing console connection to " + client.address)

	return client.conn.Close()
}

//
// private functions
//

func (client *Client) get(ctx context.Context, node mixer.Node) (mixer.Value, error) {
	if value, ok := client.cached(node); ok {
		return value, nil
	}

	for attempt := 0; attempt <= client.options.Retries; attempt++ {
		reply := client.wait(node)

		if err := client.send(osc.NewMessage(string(node))); err != nil {
			client.unwait(node, reply)
			return mixer.Absent, err
		}

		timer := time.NewTimer(client.options.Timeout)

		select {
		case value := <-reply:
			timer.Stop()
			return value, nil
		case <-timer.C:
			client.unwait(node, reply)
			slog.Debug(fmt.Sprintf("No reply for %s (attempt %d)", node, attempt+1))
		case <-ctx.Done():
			timer.Stop()
			client.unwait(node, reply)
			return mixer.Absent, ctx.Err()
		case <-client.done:
			timer.Stop()
			return mixer.Absent, ErrClosed
		}
	}

	return mixer.Absent, fmt.Errorf("%w: %s", ErrTimeout, node)
}

func (client *Client) cached(node mixer.Node) (mixer.Value, bool) {
	client.mu.Lock()
	defer client.mu.Unlock()

	value, ok := client.cache[node]
	return value, ok
}

func (client *Client) wait(node mixer.Node) chan mixer.Value {
	reply := make(chan mixer.Value, 1)

	client.mu.Lock()
	client.waiters[node] = append(client.waiters[node], reply)
	client.mu.Unlock()

	return reply
}

func (client *Client) unwait(node mixer.Node, reply chan mixer.Value) {
	client.mu.Lock()
	defer client.mu.Unlock()

	waiters := slices.DeleteFunc(client.waiters[node], func(test chan mixer.Value) bool {
		return test == reply
	})

	if len(waiters) == 0 {
		delete(client.waiters, node)
	} else {
		client.waiters[node] = waiters
	}
}

func (client *Client) subscribedLocked(node mixer.Node) bool {
	for _, held := range client.subscriptions {
		if held[node] {
			return true
		}
	}
	return false
}

func (client *Client) send(message *osc.Message) error {
	client.mu.Lock()
	closed := client.closed
	client.mu.Unlock()

	if closed {
		return ErrClosed
	}

	data, err := message.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode %s: %w", message.Address, err)
	}

	util.TraceLog("osc send", "address", message.Address, "args", message.Arguments)

	if _, err := client.conn.Write(data); err != nil {
		return fmt.Errorf("send %s: %w", message.Address, err)
	}

	return nil
}

func (client *Client) keepAlive(stop chan struct{}) {
	ticker := time.NewTicker(client.options.KeepAlive)
	defer ticker.Stop()

	for {
		if err := client.send(osc.NewMessage(addressXRemote)); err != nil {
			slog.Warn("Failed to renew console subscription: " + err.Error())
		}

		select {
		case <-stop:
			return
		case <-client.done:
			return
		case <-ticker.C:
		}
	}
}

func (client *Client) receiveLoop() {
	buffer := make([]byte, 65535)

	for {
		n, err := client.conn.Read(buffer)
		if err != nil {
			select {
			case <-client.done:
				return
			default:
			}

			if errors.Is(err, net.ErrClosed) {
				return
			}

			// ICMP unreachable surfaces here on connected UDP sockets, keep listening
			slog.Debug("Console read error: " + err.Error())
			continue
		}

		packet, err := osc.ParsePacket(string(buffer[:n]))
		if err != nil {
			slog.Warn("Dropping malformed packet from console: " + err.Error())
			continue
		}

		client.dispatch(packet)
	}
}

func (client *Client) dispatch(packet osc.Packet) {
	switch p := packet.(type) {
	case *osc.Bundle:
		for _, message := range p.Messages {
			client.dispatch(message)
		}
		for _, bundle := range p.Bundles {
			client.dispatch(bundle)
		}
	case *osc.Message:
		client.deliver(p)
	}
}

func (client *Client) deliver(message *osc.Message) {
	util.TraceLog("osc receive", "address", message.Address, "args", message.Arguments)

	value := mixer.Absent
	if len(message.Arguments) > 0 {
		value = mixer.ValueOf(message.Arguments[0])
	}

	node := mixer.Node(message.Address)

	client.mu.Lock()
	if client.subscribedLocked(node) {
		client.cache[node] = value
	}
	waiters := client.waiters[node]
	delete(client.waiters, node)
	client.mu.Unlock()

	for _, reply := range waiters {
		reply <- value
	}
}
