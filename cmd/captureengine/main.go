// Command captureengine is the thin CLI entry point that wires config and
// logging and invokes the session controller's Start/Stop. It is deliberately
// minimal — just enough glue to exercise the engine end to end.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/captureforge/engine/internal/config"
	"github.com/captureforge/engine/internal/controller"
	"github.com/captureforge/engine/internal/logging"
)

var (
	version = "0.1.0"
	cfgFile string
)

var log = logging.L("main")

var rootCmd = &cobra.Command{
	Use:   "captureengine",
	Short: "Desktop input-and-screen capture engine",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start a capture session and run until interrupted",
	Run: func(cmd *cobra.Command, args []string) {
		runSession()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("captureengine v%s\n", version)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check capture session status",
	Run: func(cmd *cobra.Command, args []string) {
		checkStatus()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.AddCommand(runCmd, versionCmd, statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runSession loads configuration, starts one capture session, and blocks
// until SIGINT/SIGTERM, then stops the session and drains the upload pool.
func runSession() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logging.Init(cfg.LogFormat, cfg.LogLevel, nil)

	ctrl := controller.New(controller.Options{
		AppDataDir:     cfg.DataDir(),
		EncoderBinary:  cfg.EncoderBinary,
		FrameRate:      cfg.FrameRate,
		SegmentSeconds: cfg.SegmentSeconds,
		BaseURL:        cfg.BaseURL,
		AuthToken:      cfg.AuthToken,
		UploadWorkers:  cfg.UploadWorkers,
		UploadQueue:    cfg.UploadQueueSize,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := ctrl.Start(ctx); err != nil {
		log.Error("failed to start session", logging.KeyError, err)
		os.Exit(1)
	}
	log.Info("session started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("stopping session")
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	if err := ctrl.Stop(stopCtx); err != nil {
		log.Error("failed to stop session", logging.KeyError, err)
	}

	ctrl.Shutdown(stopCtx)
}

// checkStatus reports whether a capture session is currently active. It
// loads config the same way runSession does and asks a fresh Controller for
// its Status(); since the controller and its session store only live inside
// the process running `run`, invoking `status` as a separate process always
// sees an idle controller rather than a remote process's live state.
func checkStatus() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Println("Status: not configured")
		return
	}

	ctrl := controller.New(controller.Options{
		AppDataDir:     cfg.DataDir(),
		EncoderBinary:  cfg.EncoderBinary,
		FrameRate:      cfg.FrameRate,
		SegmentSeconds: cfg.SegmentSeconds,
		BaseURL:        cfg.BaseURL,
		AuthToken:      cfg.AuthToken,
		UploadWorkers:  cfg.UploadWorkers,
		UploadQueue:    cfg.UploadQueueSize,
	})

	active, state := ctrl.Status()
	fmt.Printf("Active: %v\n", active)
	fmt.Printf("State: %s\n", state)
}
