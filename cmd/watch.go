// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kestrelwx/stationctl/pkg/cc8488"
	"github.com/kestrelwx/stationctl/pkg/station"
	"github.com/spf13/cobra"
)

var watchInterval int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live dashboard of the station",
	Long: `Poll the station and display a live dashboard.

The dashboard shows the latest observation, link statistics (exchanges,
retries, checksum errors, timeouts) and a scrolling event log of anomalies
and link problems.

Keys: up/down scroll the event log, q quits.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().IntVar(&watchInterval, "interval", 5, "Polling interval in seconds")
}

// Event log entry
type watchLogEntry struct {
	timestamp time.Time
	message   string
	isError   bool // true for errors, false for warnings
}

// Messages
type watchTickMsg time.Time
type readingMsg struct {
	reading   cc8488.Reading
	err       error
	anomalies []cc8488.ValidationError
}

// watchModel is the TUI model for the live dashboard.
type watchModel struct {
	connInfo string
	interval time.Duration
	client   *station.Client

	latest   *cc8488.Observation
	latestAt time.Time
	stats    station.Stats

	log           viewport.Model
	logReady      bool
	entries       []watchLogEntry
	maxLogEntries int

	width    int
	height   int
	quitting bool
}

func initialWatchModel(client *station.Client, connInfo string, interval time.Duration) watchModel {
	return watchModel{
		connInfo:      connInfo,
		interval:      interval,
		client:        client,
		maxLogEntries: 100,
		width:         80,
		height:        24,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	m := initialWatchModel(newClient(conn), connInfo, time.Duration(watchInterval)*time.Second)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}
	return nil
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(
		m.queryCmd(),
		tea.EnterAltScreen,
	)
}

func watchTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

// queryCmd runs one exchange off the UI loop and reports the outcome.
func (m watchModel) queryCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		reading, err := client.Exchange(context.Background(), cc8488.QueryCurrent{})
		msg := readingMsg{reading: reading, err: err}
		if err == nil {
			msg.anomalies = cc8488.ValidateReading(reading)
		}
		return msg
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sizeLog()

	case watchTickMsg:
		return m, m.queryCmd()

	case readingMsg:
		if msg.err != nil {
			m.addLogEntry(fmt.Sprintf("EXCHANGE ERROR: %v", msg.err), true)
		} else if cur, ok := msg.reading.(cc8488.CurrentReading); ok {
			obs := cur.Observation
			m.latest = &obs
			m.latestAt = time.Now()
			for _, anomaly := range msg.anomalies {
				m.addLogEntry(anomaly.Message, true)
			}
		}
		m.stats = *m.client.Stats()
		return m, watchTickCmd(m.interval)
	}

	var cmd tea.Cmd
	m.log, cmd = m.log.Update(msg)
	return m, cmd
}

// sizeLog fits the event log viewport beneath the fixed panels.
func (m *watchModel) sizeLog() {
	logHeight := m.height - 16
	if logHeight < 5 {
		logHeight = 5
	}
	if !m.logReady {
		m.log = viewport.New(m.width-6, logHeight)
		m.logReady = true
	} else {
		m.log.Width = m.width - 6
		m.log.Height = logHeight
	}
	m.refreshLog()
}

func (m *watchModel) addLogEntry(message string, isError bool) {
	entry := watchLogEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	}
	m.entries = append(m.entries, entry)

	// Keep only last N entries
	if len(m.entries) > m.maxLogEntries {
		m.entries = m.entries[len(m.entries)-m.maxLogEntries:]
	}
	m.refreshLog()
}

func (m *watchModel) refreshLog() {
	if !m.logReady {
		m.sizeLog()
		return
	}

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	var content strings.Builder
	if len(m.entries) == 0 {
		content.WriteString(headerStyle.Render("  (no events yet)"))
	} else {
		for _, entry := range m.entries {
			timestamp := entry.timestamp.Format("01/02/06 15:04:05.000")
			if entry.isError {
				content.WriteString(fmt.Sprintf("%s %s\n",
					headerStyle.Render(timestamp),
					errorStyle.Render("✗ "+entry.message),
				))
			} else {
				content.WriteString(fmt.Sprintf("%s %s\n",
					headerStyle.Render(timestamp),
					warningStyle.Render("ℹ "+entry.message),
				))
			}
		}
	}

	atBottom := m.log.AtBottom()
	m.log.SetContent(content.String())
	if atBottom {
		m.log.GotoBottom()
	}
}

func (m watchModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	// Styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	// Header
	var s strings.Builder
	s.WriteString(titleStyle.Render("STATIONCTL - WATCH"))
	s.WriteString("\n")
	s.WriteString(headerStyle.Render(fmt.Sprintf("%s | Interval: %s | Press 'q' to quit",
		m.connInfo, m.interval)))
	s.WriteString("\n\n")

	// Latest observation
	if m.latest == nil {
		s.WriteString(warningStyle.Render("⏳ Waiting for first observation..."))
		s.WriteString("\n\n")
	} else {
		o := m.latest
		obsContent := strings.Builder{}
		obsContent.WriteString(fmt.Sprintf("%s %s   %s %s\n",
			labelStyle.Render("Station time:"), valueStyle.Render(o.Time.String()),
			labelStyle.Render("Received:"), headerStyle.Render(m.latestAt.Format("15:04:05")),
		))
		obsContent.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
			labelStyle.Render("Temp:"), valueStyle.Render(fmt.Sprintf("%.1f°C", o.TemperatureC())),
			labelStyle.Render("Humidity:"), valueStyle.Render(fmt.Sprintf("%d%%", o.Humidity)),
			labelStyle.Render("Pressure:"), valueStyle.Render(fmt.Sprintf("%.1f hPa", o.PressureHPa())),
		))
		obsContent.WriteString(fmt.Sprintf("%s %s   %s %s",
			labelStyle.Render("Wind:"), valueStyle.Render(fmt.Sprintf("%.1f m/s %s", o.WindSpeedMS(), cc8488.Octant(o.WindDir))),
			labelStyle.Render("Rain:"), valueStyle.Render(fmt.Sprintf("%.1f mm", o.RainMM())),
		))
		s.WriteString(boxStyle.Render(obsContent.String()))
		s.WriteString("\n\n")
	}

	// Link statistics
	stats := m.stats
	var readingPercent float64
	if stats.Exchanges > 0 {
		readingPercent = float64(stats.Readings) * 100.0 / float64(stats.Exchanges)
	}

	statsContent := strings.Builder{}
	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		labelStyle.Render("Exchanges:"), valueStyle.Render(fmt.Sprintf("%d", stats.Exchanges)),
		labelStyle.Render("Readings:"), valueStyle.Render(fmt.Sprintf("%d (%.1f%%)", stats.Readings, readingPercent)),
		labelStyle.Render("Errors:"), func() string {
			if stats.Errors() > 0 {
				return errorStyle.Render(fmt.Sprintf("%d", stats.Errors()))
			}
			return valueStyle.Render("0")
		}(),
	))

	if stats.Retries > 0 || stats.ChecksumErrors > 0 || stats.Timeouts > 0 {
		statsContent.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
			labelStyle.Render("Retries:"), warningStyle.Render(fmt.Sprintf("%d", stats.Retries)),
			labelStyle.Render("Checksum:"), errorStyle.Render(fmt.Sprintf("%d", stats.ChecksumErrors)),
			labelStyle.Render("Timeouts:"), errorStyle.Render(fmt.Sprintf("%d", stats.Timeouts)),
		))
	}

	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s",
		labelStyle.Render("Bytes out/in:"), valueStyle.Render(fmt.Sprintf("%d / %d", stats.BytesWritten, stats.BytesRead)),
		labelStyle.Render("Stale frames:"), valueStyle.Render(fmt.Sprintf("%d", stats.StaleFrames)),
	))

	s.WriteString(boxStyle.Render(statsContent.String()))
	s.WriteString("\n\n")

	// Event log
	s.WriteString(labelStyle.Render("Recent Events:"))
	s.WriteString("\n")
	if m.logReady {
		s.WriteString(boxStyle.Width(m.width - 4).Render(m.log.View()))
	}

	return s.String()
}
