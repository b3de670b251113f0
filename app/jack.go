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
package app

import (
	"fmt"
	"log/slog"

	"mx-alias/audio"
	"mx-alias/mixer"
)

// applyJack names the physical JACK capture ports after the scanned labels.
func (engine *engine) applyJack(labels []mixer.Label) error {
	config := engine.config

	client, err := audio.NewJackClient(config.JackClientName, config.JackAliasBinary, config.JackPortPattern)
	if err != nil {
		return err
	}

	if err := client.Connect(); err != nil {
		return err
	}
	engine.lifecycle.Callback("jack", client.Disconnect)
	defer client.Disconnect()

	ports, err := client.CapturePorts()
	if err != nil {
		return err
	}

	if len(ports) < len(labels) {
		slog.Warn(fmt.Sprintf("Only %d JACK capture ports for %d routing slots", len(ports), len(labels)))
	}

	return client.SetAliases(ports, labels)
}
