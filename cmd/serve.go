package cmd

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jsphweid/hovertone/chord"
	"github.com/jsphweid/hovertone/constants"
	"github.com/jsphweid/hovertone/controller"
	"github.com/jsphweid/hovertone/player"
	"github.com/jsphweid/hovertone/synth"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var serveFlags struct {
	addr      string
	midiPort  string
	recordDir string
	image     string
	seed      int64
}

func init() {
	rootCmd.AddCommand(serveCmd)
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.addr, "addr", constants.GetListenAddr(), "address to listen on")
	f.StringVar(&serveFlags.midiPort, "midi-port", constants.GetMidiPort(), "MIDI output port name, empty logs notes instead")
	f.StringVar(&serveFlags.recordDir, "record-dir", constants.GetRecordDir(), "save each session as a MIDI file in this directory")
	f.StringVar(&serveFlags.image, "image", "", "image to show on the surface")
	f.Int64Var(&serveFlags.seed, "seed", 0, "random seed for note lengths and offsets, 0 picks one")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the surface and plays what the pointer does",
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(serve())
	},
}

func serve() error {
	defer midi.CloseDriver()

	clock := synth.NewClock()
	var engines synth.Tee
	var out *synth.MIDIOut
	if serveFlags.midiPort != "" {
		out = synth.NewMIDIOut(serveFlags.midiPort, clock, logger)
		engines = append(engines, out)
	} else {
		logger.Warn("no MIDI port given, notes are only logged")
		engines = append(engines, synth.NewLogEngine(clock, logger))
	}

	var recorder *synth.Recorder
	if serveFlags.recordDir != "" {
		recorder = synth.NewRecorder(clock)
		engines = append(engines, recorder)
	}

	seed := serveFlags.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	p, err := player.New(engines, rand.New(rand.NewSource(seed)), chord.DefaultDurations(), constants.MaxNoteOffset)
	if err != nil {
		return err
	}
	ctrl := controller.New(engines, p, chord.DefaultBank(), controller.DefaultConfig())

	srv := newServer(ctrl, logger, serverOptions{
		recorder:     recorder,
		recordDir:    serveFlags.recordDir,
		image:        serveFlags.image,
		restInterval: constants.RestInterval,
	})

	httpServer := &http.Server{
		Addr:    serveFlags.addr,
		Handler: srv.handler(constants.GetAllowedOrigins()),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", serveFlags.addr)
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "err", err)
		}
	}

	if out != nil {
		if err := out.Close(); err != nil {
			logger.Error("could not silence MIDI output", "err", err)
		}
	}
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return srv.flushRecording()
}
