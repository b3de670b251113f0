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
package xair

// UsbSrc is the value of /routing/usb/<nn>/src.
type UsbSrc int

const (
	UsbCh01 UsbSrc = iota
	UsbCh16        = UsbCh01 + 15
	UsbAuxL        = UsbCh16 + 1
	UsbAuxR        = UsbAuxL + 1
	UsbFx1L        = UsbAuxR + 1
	UsbFx4R        = UsbFx1L + 7
	UsbBus1        = UsbFx4R + 1
	UsbBus6        = UsbBus1 + 5
	UsbSend1       = UsbBus6 + 1
	UsbSend4       = UsbSend1 + 3
	UsbL           = UsbSend4 + 1
	UsbR           = UsbL + 1
)

// ClockRate is the value of /-prefs/clockrate.
type ClockRate int

const (
	ClockRate48k ClockRate = iota
	ClockRate44k1
)
