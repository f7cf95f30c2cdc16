package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tempo/internal/engine"
	"tempo/internal/ui"
	"tempo/internal/vocab"
)

var monitorCmd = &cobra.Command{
	Use:          "monitor",
	Short:        "Watch the engine link and vocabulary sync live",
	SilenceUsage: true,
	RunE:         runMonitor,
}

func runMonitor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("monitor needs a terminal")
	}

	registry := vocab.New()
	client := engine.NewSyncClient(engine.Options{
		Registry: registry,
		Discovery: &engine.FileDiscovery{
			Path:     cfg.Engine.DiscoveryPath,
			Interval: cfg.Engine.PollInterval(),
		},
		SettleDelay: cfg.Engine.SettleDelay(),
	})
	client.Start()
	defer client.Stop()

	events := make(chan ui.StatusEvent, 1)
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				close(events)
				return
			case <-ticker.C:
				select {
				case events <- statusSnapshot(client, registry):
				default:
				}
			}
		}
	}()

	model := ui.NewMonitorModel("tempo engine monitor", events)
	_, err = tea.NewProgram(model).Run()
	close(done)
	return err
}

func statusSnapshot(client *engine.SyncClient, registry *vocab.Registry) ui.StatusEvent {
	ev := ui.StatusEvent{Conn: client.State()}
	if st := client.Engine(); st != nil {
		ev.Port = st.Port
		ev.Pid = st.Pid
	}
	ev.Samples = len(registry.DynamicSamples())
	ev.Banks = len(registry.DynamicBanks())
	ev.Sounds = len(registry.DynamicSounds())
	ev.SeenSamples = ev.Samples > 0
	ev.SeenBanks = ev.Banks > 0
	ev.SeenSounds = ev.Sounds > 0
	return ev
}
