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
package display

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"

	"mx-alias/display/custom"
	"mx-alias/display/theme"
	"mx-alias/model"
	"mx-alias/reaper"
)

//
// constants
//

const (
	layoutStatusHeaderWidth = 12
	layoutStatusRowCount    = 4
	layoutSlotColumnWidth   = 6
)

//
// types
//

// Tui shows progress while the console is scanned and the resulting routing
// table until the user quits.
type Tui struct {
	lifecycle    *reaper.Reaper
	app          *cview.Application
	shutdown     chan struct{}
	shutdownOnce sync.Once
	started      bool

	errorCount int

	gridApp    *cview.Grid
	tableSlots *cview.Table
	tvLogs     *cview.TextView

	fieldStatus   *custom.StatusField
	fieldConsole  *custom.StatusField
	fieldAssigned *custom.StatusField
	fieldErrors   *custom.StatusField
}

//
// constructor
//

// NewTui builds a TUI whose quit keys reap lifecycle.
func NewTui(lifecycle *reaper.Reaper) *Tui {
	tui := &Tui{
		lifecycle:  lifecycle,
		shutdown:   make(chan struct{}),
		errorCount: 0,
	}

	return tui
}

//
// lifecycle managment
//

func (tui *Tui) Initialize() {
	tui.app = cview.NewApplication()
	defer tui.app.HandlePanic()

	statusRows := make([]int, layoutStatusRowCount)
	for i := range layoutStatusRowCount {
		statusRows[i] = 1
	}

	//
	// main application grid
	tui.gridApp = cview.NewGrid()
	tui.gridApp.SetPadding(0, 0, 0, 0)
	tui.gridApp.SetColumns(-1)
	tui.gridApp.SetBorders(true)
	tui.gridApp.SetBordersColor(theme.BorderColor)
	tui.gridApp.SetRows(layoutStatusRowCount, -2, -1)
	tui.gridApp.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)

	//
	// status fields
	gridStatus := cview.NewGrid()
	gridStatus.SetPadding(0, 0, 1, 1)
	gridStatus.SetColumns(-1)
	gridStatus.SetRows(statusRows...)
	gridStatus.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)

	tui.fieldStatus = custom.NewStatusField(layoutStatusHeaderWidth, "Status", StatusSearching.String())
	tui.fieldStatus.SetColor(StatusSearching.color())
	tui.fieldConsole = custom.NewStatusField(layoutStatusHeaderWidth, "Console", "")
	tui.fieldAssigned = custom.NewStatusField(layoutStatusHeaderWidth, "Assigned", "")
	tui.fieldErrors = custom.NewStatusField(layoutStatusHeaderWidth, "Errors", "0")

	gridStatus.AddItem(tui.fieldStatus.GetGrid(), 0, 0, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.fieldConsole.GetGrid(), 1, 0, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.fieldAssigned.GetGrid(), 2, 0, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.fieldErrors.GetGrid(), 3, 0, 1, 1, 0, 0, false)

	tui.gridApp.AddItem(gridStatus, 0, 0, 1, 1, 0, 0, false)

	//
	// routing table
	tui.tableSlots = cview.NewTable()
	tui.tableSlots.SetBorders(false)
	tui.tableSlots.SetFixed(1, 0)
	tui.tableSlots.SetSelectable(true, false)

	tui.gridApp.AddItem(tui.tableSlots, 1, 0, 1, 1, 0, 0, true)

	//
	// log output view
	tui.tvLogs = cview.NewTextView()
	tui.tvLogs.SetPadding(0, 0, 0, 0)
	tui.tvLogs.SetDynamicColors(true)

	tui.gridApp.AddItem(tui.tvLogs, 2, 0, 1, 1, 0, 0, false)

	tui.app.SetRoot(tui.gridApp, true)
}

func (tui *Tui) Start() {
	tui.lifecycle.Register("tui")
	tui.started = true

	go func() {
		defer tui.app.HandlePanic()

		// Capture user input
		tui.app.SetInputCapture(tui.eventHandler)

		if err := tui.app.Run(); err != nil {
			slog.Error("TUI failed: " + err.Error())
		}

		tui.shutdownOnce.Do(func() { close(tui.shutdown) })
		tui.lifecycle.Done("tui")
	}()
}

func (tui *Tui) Shutdown() {
	if !tui.started {
		return
	}

	slog.Debug("Shutting down TUI")
	tui.app.Stop()

	slog.Debug("Waiting for TUI to shut down")
	tui.WaitForShutdown()
}

func (tui *Tui) IsShutdown() bool {
	select {
	case <-tui.shutdown:
		return true
	default:
		return false
	}
}

func (tui *Tui) WaitForShutdown() {
	<-tui.shutdown
}

//
// display.UI
//

// ShowConsole shows the console details and blocks until the user quits.
func (tui *Tui) ShowConsole(console model.ConsoleInfo) error {
	tui.app.QueueUpdateDraw(func() {
		tui.fieldConsole.SetValue(describeConsole(console))
	})

	tui.SetStatus(StatusDone)
	tui.WaitForShutdown()

	return nil
}

// ShowResult fills the routing table and blocks until the user quits.
func (tui *Tui) ShowResult(report model.ScanReport) error {
	tui.app.QueueUpdateDraw(func() {
		tui.fillTable(report)
		tui.fieldConsole.SetValue(describeConsole(report.Console))
		tui.fieldAssigned.SetValue(fmt.Sprintf("%d / %d", report.AssignedCount(), len(report.Slots)))
	})

	tui.SetStatus(StatusDone)
	tui.WaitForShutdown()

	return nil
}

//
// status update functions
//

func (tui *Tui) SetStatus(status Status) {
	if tui.IsShutdown() {
		return
	}

	tui.app.QueueUpdateDraw(func() {
		tui.fieldStatus.SetValue(status.String())
		tui.fieldStatus.SetColor(status.color())
	})
}

func (tui *Tui) IncrementErrorCount() {
	if tui.IsShutdown() {
		return
	}

	tui.app.QueueUpdateDraw(func() {
		tui.errorCount++
		tui.fieldErrors.SetValue(fmt.Sprintf("%d", tui.errorCount))
		tui.fieldErrors.SetColor(theme.Red)
	})
}

//
// logging
//

func (tui *Tui) WriteLevelLog(level slog.Level, message string) {
	color := "-"

	if level == slog.LevelWarn {
		color = "#" + theme.YellowRGB
	} else if level >= slog.LevelError {
		color = "#" + theme.RedRGB + "::b"
	} else if level <= slog.LevelDebug {
		color = "#" + theme.GrayRGB
	}

	tui.tvLogs.Write([]byte(fmt.Sprintf("[%s][%s[] [%s[] %s[-:-:-]\n", color, time.Now().Format("2006-01-02 15:04:05"), level.String(), message)))
}

//
// private functions
//

func (tui *Tui) eventHandler(event *tcell.EventKey) *tcell.EventKey {
	// Anything handled here will be executed on the main thread
	switch event.Key() {
	case tcell.KeyEsc, tcell.KeyCtrlC:
		go tui.lifecycle.Reap()
		return nil
	case tcell.KeyRune:
		if event.Rune() == 'q' {
			go tui.lifecycle.Reap()
			return nil
		}
	}

	return event
}

func (tui *Tui) fillTable(report model.ScanReport) {
	tui.tableSlots.Clear()

	tui.tableSlots.SetCell(0, 0, headerCell("Slot"))
	tui.tableSlots.SetCell(0, 1, headerCell(""))
	tui.tableSlots.SetCell(0, 2, headerCell("Label"))

	for i, slot := range report.Slots {
		row := i + 1

		number := cview.NewTableCell(fmt.Sprintf("%*d", layoutSlotColumnWidth-2, row))
		number.SetTextColor(theme.SlotNumberColor)

		marker := cview.NewTableCell(string(theme.RuneAssigned))
		label := cview.NewTableCell(slot.String())
		label.SetExpansion(1)

		if slot.Valid() {
			marker.SetTextColor(theme.SoftGreen)
		} else {
			marker = cview.NewTableCell(string(theme.RuneAbsent))
			marker.SetTextColor(theme.AbsentSlotColor)
			label = cview.NewTableCell("-")
			label.SetTextColor(theme.AbsentSlotColor)
			label.SetExpansion(1)
		}

		if i%2 == 1 {
			number.SetBackgroundColor(theme.AlternateRowBackgroundColor)
			marker.SetBackgroundColor(theme.AlternateRowBackgroundColor)
			label.SetBackgroundColor(theme.AlternateRowBackgroundColor)
		}

		tui.tableSlots.SetCell(row, 0, number)
		tui.tableSlots.SetCell(row, 1, marker)
		tui.tableSlots.SetCell(row, 2, label)
	}
}

func headerCell(text string) *cview.TableCell {
	cell := cview.NewTableCell(text)
	cell.SetTextColor(theme.Blue)
	cell.SetSelectable(false)
	return cell
}
