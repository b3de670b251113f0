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
	"regexp"
	"slices"
	"strconv"
)

// DefaultPortPattern matches the physical capture ports of the JACK system
// client. The first group must capture the port number.
const DefaultPortPattern = `^system:capture_(\d+)$`

type Port struct {
	number   int
	jackName string
}

func newPort(number int, jackName string) *Port {
	return &Port{
		number:   number,
		jackName: jackName,
	}
}

func (port *Port) Number() int {
	return port.number
}

func (port *Port) JackName() string {
	return port.jackName
}

// parseCapturePorts keeps the names matching pattern and orders them by port
// number, so capture_10 follows capture_9.
func parseCapturePorts(names []string, pattern *regexp.Regexp) []*Port {
	ports := make([]*Port, 0, len(names))

	for _, name := range names {
		match := pattern.FindStringSubmatch(name)
		if len(match) < 2 {
			continue
		}

		number, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		ports = append(ports, newPort(number, name))
	}

	slices.SortFunc(ports, func(a, b *Port) int {
		return a.number - b.number
	})

	return ports
}
