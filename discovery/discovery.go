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

// Package discovery locates X32 and XAir consoles on the local network.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/hypebeast/go-osc/osc"
	"golang.org/x/sync/errgroup"

	"mx-alias/console"
	"mx-alias/mixer"
	"mx-alias/mixer/x32"
	"mx-alias/mixer/xair"
)

var ErrNotFound = errors.New("no console answered")

const (
	addressXInfo     = "/xinfo"
	broadcastAddress = "255.255.255.255"
)

type Options struct {
	Interval time.Duration
	Timeout  time.Duration
}

func DefaultOptions() Options {
	return Options{
		Interval: 1000 * time.Millisecond,
		Timeout:  10000 * time.Millisecond,
	}
}

// Mixer identifies one console that answered an /xinfo request.
type Mixer struct {
	Address string       `json:"address"`
	Name    string       `json:"name"`
	Model   string       `json:"model"`
	Version string       `json:"version"`
	Family  mixer.Family `json:"family"`
}

func (m Mixer) String() string {
	if m.Name == "" {
		return fmt.Sprintf("%s console at %s", m.Family, m.Address)
	}
	return fmt.Sprintf("%s '%s' (%s) at %s", m.Family, m.Name, strings.TrimSpace(m.Model+" "+m.Version), m.Address)
}

type target struct {
	addr   *net.UDPAddr
	family mixer.Family
}

// Find broadcasts /xinfo on both console ports until the first console
// answers. Both families race, whichever replies first wins.
func Find(ctx context.Context, options Options) (Mixer, error) {
	targets, err := targetsFor(broadcastAddress)
	if err != nil {
		return Mixer{}, err
	}

	slog.Info("Searching for a console on the local network")

	return race(ctx, targets, options)
}

// Probe asks a single host on both console ports which family it belongs to.
func Probe(ctx context.Context, host string, options Options) (Mixer, error) {
	targets, err := targetsFor(host)
	if err != nil {
		return Mixer{}, err
	}

	slog.Info("Probing " + host + " for a console")

	return race(ctx, targets, options)
}

// Manual builds a Mixer for a known address and family without asking the
// network. The family port is added when address carries no port.
func Manual(address string, family mixer.Family) (Mixer, error) {
	port := familyPort(family)
	if port == 0 {
		return Mixer{}, fmt.Errorf("a console family is required for %s", address)
	}

	if _, _, err := net.SplitHostPort(address); err != nil {
		address = net.JoinHostPort(address, strconv.Itoa(port))
	}

	return Mixer{
		Address: address,
		Family:  family,
	}, nil
}

// Connect dials the console and returns the scanner for its family. The
// scanner owns the connection and closes it on Terminate.
func Connect(ctx context.Context, found Mixer, options console.Options) (mixer.Scanner, error) {
	if familyPort(found.Family) == 0 {
		return nil, fmt.Errorf("unsupported console family %s", found.Family)
	}

	client, err := console.Dial(ctx, found.Address, options)
	if err != nil {
		return nil, err
	}

	if found.Family == mixer.FamilyX32 {
		return x32.NewScanner(client, client), nil
	}

	return xair.NewScanner(client, client), nil
}

//
// private functions
//

func familyPort(family mixer.Family) int {
	switch family {
	case mixer.FamilyX32:
		return x32.Port
	case mixer.FamilyXAir:
		return xair.Port
	}
	return 0
}

func targetsFor(host string) ([]target, error) {
	targets := make([]target, 0, 2)

	for _, family := range []mixer.Family{mixer.FamilyX32, mixer.FamilyXAir} {
		addr, err := net.ResolveUDPAddr("udp4", net.JoinHostPort(host, strconv.Itoa(familyPort(family))))
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", host, err)
		}

		targets = append(targets, target{addr: addr, family: family})
	}

	return targets, nil
}

func race(ctx context.Context, targets []target, options Options) (Mixer, error) {
	defaults := DefaultOptions()
	if options.Interval <= 0 {
		options.Interval = defaults.Interval
	}
	if options.Timeout <= 0 {
		options.Timeout = defaults.Timeout
	}

	request, err := osc.NewMessage(addressXInfo).MarshalBinary()
	if err != nil {
		return Mixer{}, err
	}

	conn, err := net.ListenPacket("udp4", ":0")
	if err != nil {
		return Mixer{}, fmt.Errorf("open discovery socket: %w", err)
	}
	defer conn.Close()

	timeoutCtx, cancel := context.WithTimeout(ctx, options.Timeout)
	defer cancel()

	found := make(chan Mixer, 1)
	group, groupCtx := errgroup.WithContext(timeoutCtx)

	// closing the socket is the only way to unblock the reader
	group.Go(func() error {
		<-groupCtx.Done()
		conn.Close()
		return nil
	})

	group.Go(func() error {
		ticker := time.NewTicker(options.Interval)
		defer ticker.Stop()

		for {
			for _, target := range targets {
				if _, err := conn.WriteTo(request, target.addr); err != nil {
					slog.Debug(fmt.Sprintf("Failed to send /xinfo to %s: %s", target.addr, err.Error()))
				}
			}

			select {
			case <-groupCtx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})

	group.Go(func() error {
		buffer := make([]byte, 4096)

		for {
			n, sender, err := conn.ReadFrom(buffer)
			if err != nil {
				if groupCtx.Err() != nil {
					return nil
				}
				return fmt.Errorf("discovery read: %w", err)
			}

			answered, ok := parseReply(buffer[:n], sender, targets)
			if !ok {
				continue
			}

			found <- answered
			cancel()
			return nil
		}
	})

	if err := group.Wait(); err != nil {
		return Mixer{}, err
	}

	select {
	case answered := <-found:
		slog.Info("Found " + answered.String())
		return answered, nil
	default:
	}

	if err := ctx.Err(); err != nil {
		return Mixer{}, err
	}

	return Mixer{}, ErrNotFound
}

func parseReply(data []byte, sender net.Addr, targets []target) (Mixer, bool) {
	packet, err := osc.ParsePacket(string(data))
	if err != nil {
		return Mixer{}, false
	}

	message, ok := packet.(*osc.Message)
	if !ok || message.Address != addressXInfo || len(message.Arguments) < 4 {
		return Mixer{}, false
	}

	udpSender, ok := sender.(*net.UDPAddr)
	if !ok {
		return Mixer{}, false
	}

	family := mixer.FamilyUnknown
	for _, target := range targets {
		if target.addr.Port == udpSender.Port {
			family = target.family
			break
		}
	}
	if family == mixer.FamilyUnknown {
		return Mixer{}, false
	}

	fields := make([]string, 4)
	for i := range fields {
		fields[i], _ = message.Arguments[i].(string)
	}

	return Mixer{
		Address: udpSender.String(),
		Name:    fields[1],
		Model:   fields[2],
		Version: fields[3],
		Family:  family,
	}, true
}
