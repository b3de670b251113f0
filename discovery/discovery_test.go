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
package discovery

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/hypebeast/go-osc/osc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mx-alias/console"
	"mx-alias/mixer"
	"mx-alias/mixer/x32"
	"mx-alias/mixer/xair"
)

// answerXInfo replies to every /xinfo request it receives on a loopback socket.
func answerXInfo(t *testing.T, name string, model string) *net.UDPAddr {
	t.Helper()

	conn, err := net.ListenPacket("udp4", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	go func() {
		buffer := make([]byte, 1024)

		for {
			n, addr, err := conn.ReadFrom(buffer)
			if err != nil {
				return
			}

			packet, err := osc.ParsePacket(string(buffer[:n]))
			if err != nil {
				continue
			}
			if message, ok := packet.(*osc.Message); !ok || message.Address != addressXInfo {
				continue
			}

			reply := osc.NewMessage(addressXInfo, "127.0.0.1", name, model, "4.06")
			data, err := reply.MarshalBinary()
			if err != nil {
				continue
			}
			conn.WriteTo(data, addr)
		}
	}()

	return conn.LocalAddr().(*net.UDPAddr)
}

func silentPort(t *testing.T) *net.UDPAddr {
	t.Helper()

	conn, err := net.ListenPacket("udp4", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn.LocalAddr().(*net.UDPAddr)
}

func TestRaceFindsAnsweringConsole(t *testing.T) {
	targets := []target{
		{addr: silentPort(t), family: mixer.FamilyX32},
		{addr: answerXInfo(t, "FOH", "XR18"), family: mixer.FamilyXAir},
	}

	found, err := race(context.Background(), targets, Options{Interval: 20 * time.Millisecond, Timeout: 2 * time.Second})
	require.NoError(t, err)

	assert.Equal(t, mixer.FamilyXAir, found.Family)
	assert.Equal(t, "FOH", found.Name)
	assert.Equal(t, "XR18", found.Model)
	assert.Equal(t, "4.06", found.Version)
	assert.Equal(t, targets[1].addr.String(), found.Address)
}

func TestRaceTimesOut(t *testing.T) {
	targets := []target{{addr: silentPort(t), family: mixer.FamilyX32}}

	start := time.Now()
	_, err := race(context.Background(), targets, Options{Interval: 20 * time.Millisecond, Timeout: 100 * time.Millisecond})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRaceHonoursCancellation(t *testing.T) {
	targets := []target{{addr: silentPort(t), family: mixer.FamilyX32}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := race(ctx, targets, Options{Interval: 20 * time.Millisecond, Timeout: time.Second})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseReplyRejectsStrangers(t *testing.T) {
	known := &net.UDPAddr{IP: net.IPv4(10, 0, 0, 5), Port: x32.Port}
	targets := []target{{addr: known, family: mixer.FamilyX32}}

	encode := func(message *osc.Message) []byte {
		data, err := message.MarshalBinary()
		require.NoError(t, err)
		return data
	}

	_, ok := parseReply(encode(osc.NewMessage("/status", "active", "10.0.0.5", "X32")), known, targets)
	assert.False(t, ok)

	_, ok = parseReply(encode(osc.NewMessage(addressXInfo, "10.0.0.5", "X32")), known, targets)
	assert.False(t, ok)

	stranger := &net.UDPAddr{IP: net.IPv4(10, 0, 0, 6), Port: 9000}
	_, ok = parseReply(encode(osc.NewMessage(addressXInfo, "10.0.0.6", "a", "b", "c")), stranger, targets)
	assert.False(t, ok)

	found, ok := parseReply(encode(osc.NewMessage(addressXInfo, "10.0.0.5", "Stage", "X32RACK", "4.06")), known, targets)
	require.True(t, ok)
	assert.Equal(t, "10.0.0.5:10023", found.Address)
	assert.Equal(t, mixer.FamilyX32, found.Family)
}

func TestManual(t *testing.T) {
	found, err := Manual("192.168.1.20", mixer.FamilyX32)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.20:10023", found.Address)

	found, err = Manual("192.168.1.21:5000", mixer.FamilyXAir)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.21:5000", found.Address)

	_, err = Manual("192.168.1.22", mixer.FamilyUnknown)
	assert.Error(t, err)
}

func TestConnectPicksFamilyScanner(t *testing.T) {
	addr := silentPort(t)

	scanner, err := Connect(context.Background(), Mixer{Address: addr.String(), Family: mixer.FamilyX32}, console.Options{})
	require.NoError(t, err)
	assert.IsType(t, &x32.Scanner{}, scanner)
	assert.NoError(t, scanner.Terminate())

	scanner, err = Connect(context.Background(), Mixer{Address: addr.String(), Family: mixer.FamilyXAir}, console.Options{})
	require.NoError(t, err)
	assert.IsType(t, &xair.Scanner{}, scanner)
	assert.NoError(t, scanner.Terminate())

	_, err = Connect(context.Background(), Mixer{Address: addr.String()}, console.Options{})
	assert.Error(t, err)
}

func TestMixerString(t *testing.T) {
	found := Mixer{Address: "10.0.0.5:10023", Name: "FOH", Model: "X32", Version: "4.06", Family: mixer.FamilyX32}
	assert.Equal(t, "X32 'FOH' (X32 4.06) at 10.0.0.5:10023", found.String())

	found.Version = ""
	assert.Equal(t, "X32 'FOH' (X32) at 10.0.0.5:10023", found.String())

	assert.Equal(t, "XAir console at 10.0.0.9:10024", Mixer{Address: "10.0.0.9:10024", Family: mixer.FamilyXAir}.String())
}
