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
package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"strings"

	"github.com/hairlesshobo/go-jack"

	"mx-alias/mixer"
	"mx-alias/util"
)

type JackClient struct {
	clientName  string
	aliasBinary string
	portPattern *regexp.Regexp

	jackClient *jack.Client

	runCommand func(name string, args ...string) ([]byte, error)
}

// NewJackClient prepares a client. aliasBinary may be empty, the usual
// install locations are searched then.
func NewJackClient(clientName string, aliasBinary string, portPattern string) (*JackClient, error) {
	if portPattern == "" {
		portPattern = DefaultPortPattern
	}

	pattern, err := regexp.Compile(portPattern)
	if err != nil {
		return nil, fmt.Errorf("jack port pattern: %w", err)
	}
	if pattern.NumSubexp() < 1 {
		return nil, fmt.Errorf("jack port pattern %q must capture the port number", portPattern)
	}

	if aliasBinary == "" {
		aliasBinary = util.FindJackAliasBinary()
	}

	client := JackClient{
		clientName:  clientName,
		aliasBinary: aliasBinary,
		portPattern: pattern,
		runCommand:  runCommand,
	}

	return &client, nil
}

func (client *JackClient) Connect() error {
	slog.Info("Connecting to JACK server")

	jack.SetErrorFunction(func(message string) {
		slog.Error("JACK: " + message)
	})
	jack.SetInfoFunction(func(message string) {
		slog.Debug("JACK: " + message)
	})

	var jackStatus int
	client.jackClient, jackStatus = jack.ClientOpen(client.clientName, jack.NoStartServer)

	if jackStatus != 0 {
		client.jackClient = nil
		return fmt.Errorf("JACK status: %s", jack.StrError(jackStatus))
	}

	slog.Info("JACK server connected")

	return nil
}

func (client *JackClient) Disconnect() {
	if client.jackClient != nil {
		slog.Debug("Disconnecting from JACK server")
		client.jackClient.Close()
		client.jackClient = nil
	}
}

// CapturePorts lists the physical capture ports matching the port pattern,
// ordered by port number.
func (client *JackClient) CapturePorts() ([]*Port, error) {
	if client.jackClient == nil {
		return nil, errors.New("not connected to JACK")
	}

	names := client.jackClient.GetPorts("", jack.DEFAULT_AUDIO_TYPE, jack.PortIsOutput|jack.PortIsPhysical)
	ports := parseCapturePorts(names, client.portPattern)

	slog.Debug(fmt.Sprintf("Found %d JACK capture ports", len(ports)))

	return ports, nil
}

// SetAliases names capture port i after labels[i]. Absent labels leave the
// port alone. Every port is attempted, failures are returned together.
func (client *JackClient) SetAliases(ports []*Port, labels []mixer.Label) error {
	if client.aliasBinary == "" {
		return errors.New("jack_alias binary not found")
	}

	var errs []error

	for i, port := range ports {
		if i >= len(labels) {
			break
		}

		if !labels[i].Valid() {
			slog.Info(fmt.Sprintf("No source for %s, leaving it alone", port.jackName))
			continue
		}

		alias := labels[i].String()
		output, err := client.runCommand(client.aliasBinary, port.jackName, alias)
		if err != nil {
			errs = append(errs, fmt.Errorf("alias %s: %w: %s", port.jackName, err, strings.TrimSpace(string(output))))
			continue
		}

		slog.Info(fmt.Sprintf("Aliased %s to '%s'", port.jackName, alias))
	}

	return errors.Join(errs...)
}

func runCommand(name string, args ...string) ([]byte, error) {
	util.TraceLog("exec", "command", name, "args", args)

	return exec.Command(name, args...).CombinedOutput()
}
