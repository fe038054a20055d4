// Command edidflash reads and writes display EDID EEPROMs over I2C.
//
// By default every operation is simulated: the sequence of bus
// transactions that would occur is printed instead of executed. Danger
// mode (-d) performs the real transactions and requires root privilege.
//
// Usage:
//
//	edidflash [flags] {read_edid | write_edid FILE | interactive}
//
// Flags:
//
//	-d                Danger mode: actually perform bus transactions
//	-n                Force simulation mode, overriding -d
//	-b int            I2C bus number (required for read_edid/write_edid)
//	-transport string Byte transfer backend: tools or devfs (default "tools")
//	-config string    Configuration file path
//	-capture string   Write a transaction capture file (.elog)
//	-log-level string Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Show the transactions a read would perform
//	edidflash -b 3 read_edid
//
//	# Really read bus 3 and print the block as hex
//	edidflash -d -b 3 read_edid > edid.hex
//
//	# Write a hex file back, with confirmation, capturing transactions
//	edidflash -d -b 3 -capture write.elog write_edid edid.hex
//
//	# Explore a device interactively
//	edidflash -d -b 3 interactive
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/edid-tools/edidflash/cmd/edidflash/interactive"
	"github.com/edid-tools/edidflash/internal/host"
	"github.com/edid-tools/edidflash/pkg/capture"
	"github.com/edid-tools/edidflash/pkg/config"
	"github.com/edid-tools/edidflash/pkg/edid"
	"github.com/edid-tools/edidflash/pkg/i2c"
	"github.com/edid-tools/edidflash/pkg/transfer"
)

const usage = `edidflash - display EDID EEPROM tool

Usage:
  edidflash [flags] {read_edid | write_edid FILE | interactive}

Commands:
  read_edid        Read 256 bytes and print them as contiguous hex
  write_edid FILE  Validate hex text from FILE and write it to the device
  interactive      Open an interactive shell on the device

Flags:
  -d                 Danger mode: actually perform bus transactions
  -n                 Force simulation mode, overriding -d
  -b BUS             I2C bus number (required for read_edid/write_edid)
  -transport KIND    Byte transfer backend: tools or devfs (default tools)
  -config FILE       Configuration file path
  -capture FILE      Write a transaction capture file (.elog)
  -log-level LEVEL   Log level: debug, info, warn, error (default info)

Without -d all transactions are simulated and echoed instead of executed.
`

// options is the run configuration, built once from the config file and
// flags and passed by value from there on.
type options struct {
	danger    bool
	noop      bool
	bus       int
	transport string
	capture   string
	logLevel  string
	tools     config.ToolPaths
}

// simulated reports whether transactions are echoed instead of executed.
// -n wins over -d; without -d simulation is the default.
func (o options) simulated() bool {
	return o.noop || !o.danger
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("edidflash", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	danger := fs.Bool("d", false, "danger mode: actually perform bus transactions")
	noop := fs.Bool("n", false, "force simulation mode, overriding -d")
	bus := fs.Int("b", -1, "I2C bus number")
	transport := fs.String("transport", "", "byte transfer backend: tools or devfs")
	configFile := fs.String("config", "", "configuration file path")
	capturePath := fs.String("capture", "", "transaction capture file path")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	i2cget := fs.String("i2cget", "", "path to the i2cget binary")
	i2cset := fs.String("i2cset", "", "path to the i2cset binary")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	opts, err := buildOptions(fs, *configFile, flagValues{
		danger: *danger, noop: *noop, bus: *bus, transport: *transport,
		capture: *capturePath, logLevel: *logLevel,
		i2cget: *i2cget, i2cset: *i2cset,
	})
	if err != nil {
		return fatal(err)
	}

	setupLogging(opts.logLevel)

	if fs.NArg() < 1 {
		fmt.Fprint(os.Stderr, usage)
		return 1
	}
	command := fs.Arg(0)

	switch command {
	case "read_edid":
		return runRead(opts)
	case "write_edid":
		if fs.NArg() < 2 {
			return fatal(fmt.Errorf("write_edid requires a hex text FILE argument"))
		}
		return runWrite(opts, fs.Arg(1))
	case "interactive":
		return runInteractive(opts)
	case "help":
		fmt.Print(usage)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "FATAL: unknown command %q\n", command)
		fmt.Fprint(os.Stderr, usage)
		return 1
	}
}

// flagValues carries the parsed flag values into the config overlay.
type flagValues struct {
	danger    bool
	noop      bool
	bus       int
	transport string
	capture   string
	logLevel  string
	i2cget    string
	i2cset    string
}

// buildOptions merges the optional config file with flags. A flag that was
// set on the command line always wins over the file.
func buildOptions(fs *flag.FlagSet, configFile string, fv flagValues) (options, error) {
	opts := options{
		danger:    fv.danger,
		noop:      fv.noop,
		bus:       fv.bus,
		transport: fv.transport,
		capture:   fv.capture,
		logLevel:  fv.logLevel,
		tools:     config.ToolPaths{I2CGet: fv.i2cget, I2CSet: fv.i2cset},
	}

	if configFile != "" {
		file, err := config.Load(configFile)
		if err != nil {
			return options{}, err
		}

		set := map[string]bool{}
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

		if !set["d"] {
			opts.danger = file.Danger
		}
		if !set["b"] && file.Bus != nil {
			opts.bus = *file.Bus
		}
		if !set["transport"] && file.Transport != "" {
			opts.transport = file.Transport
		}
		if !set["capture"] && file.Capture != "" {
			opts.capture = file.Capture
		}
		if !set["log-level"] && file.LogLevel != "" {
			opts.logLevel = file.LogLevel
		}
		if !set["i2cget"] && file.Tools.I2CGet != "" {
			opts.tools.I2CGet = file.Tools.I2CGet
		}
		if !set["i2cset"] && file.Tools.I2CSet != "" {
			opts.tools.I2CSet = file.Tools.I2CSet
		}
	}

	if opts.transport == "" {
		opts.transport = config.TransportTools
	}
	if opts.logLevel == "" {
		opts.logLevel = "info"
	}
	return opts, nil
}

func setupLogging(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

// newSession builds the transport stack and transfer session for a
// one-shot command. The returned cleanup closes the session and any
// capture file.
func newSession(opts options) (*transfer.Session, func(), error) {
	if opts.bus < 0 {
		return nil, nil, fmt.Errorf("missing bus number: -b BUS is required")
	}

	var t i2c.Transport
	if opts.simulated() {
		t = i2c.NewSim(opts.bus, os.Stdout)
	} else {
		if err := host.RequireRoot(); err != nil {
			return nil, nil, err
		}
		host.EnsureI2CDev(slog.Default())

		switch opts.transport {
		case config.TransportDevfs:
			devfs, err := i2c.OpenDevfs(opts.bus)
			if err != nil {
				return nil, nil, err
			}
			t = devfs
		case config.TransportTools:
			getPath, err := host.FindTool("i2cget", opts.tools.I2CGet)
			if err != nil {
				return nil, nil, err
			}
			setPath, err := host.FindTool("i2cset", opts.tools.I2CSet)
			if err != nil {
				return nil, nil, err
			}
			t = i2c.NewTools(opts.bus, getPath, setPath)
		default:
			return nil, nil, fmt.Errorf("unknown transport %q", opts.transport)
		}
	}

	var logger capture.Logger
	var fileLogger *capture.FileLogger
	if opts.capture != "" {
		fl, err := capture.NewFileLogger(opts.capture)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open capture file: %w", err)
		}
		fileLogger = fl
		logger = fl
	}
	if opts.logLevel == "debug" {
		adapter := capture.NewSlogAdapter(slog.Default())
		if logger != nil {
			logger = capture.NewMultiLogger(logger, adapter)
		} else {
			logger = adapter
		}
	}

	session := transfer.NewSession(t, opts.bus, logger, opts.simulated(), os.Stderr)
	cleanup := func() {
		_ = session.Close()
		if fileLogger != nil {
			_ = fileLogger.Close()
		}
	}
	return session, cleanup, nil
}

func runRead(opts options) int {
	session, cleanup, err := newSession(opts)
	if err != nil {
		return fatal(err)
	}
	defer cleanup()

	blob, err := session.ReadEDID()
	if err != nil {
		return fatal(err)
	}
	fmt.Println(blob.EncodeHex())
	return 0
}

func runWrite(opts options, path string) int {
	text, err := os.ReadFile(path)
	if err != nil {
		return fatal(fmt.Errorf("failed to read %s: %w", path, err))
	}
	data, err := edid.ParseHex(string(text))
	if err != nil {
		return fatal(err)
	}

	session, cleanup, err := newSession(opts)
	if err != nil {
		return fatal(err)
	}
	defer cleanup()

	err = session.WriteEDID(data, transfer.WriteOptions{
		SkipProbe: opts.simulated(),
		Confirm:   promptConfirm,
	})
	if err == transfer.ErrDeclined {
		fmt.Println("Aborted, nothing written.")
		return 0
	}
	if err != nil {
		return fatal(err)
	}
	return 0
}

func runInteractive(opts options) int {
	session, cleanup, err := newSession(opts)
	if err != nil {
		return fatal(err)
	}
	defer cleanup()

	shell, err := interactive.New(session, opts.simulated())
	if err != nil {
		return fatal(err)
	}
	if err := shell.Run(); err != nil {
		return fatal(err)
	}
	return 0
}

// promptConfirm asks for interactive confirmation before a write. Only an
// affirmative answer proceeds.
func promptConfirm() (bool, error) {
	rl, err := readline.New("Really write? (N/y): ")
	if err != nil {
		return false, err
	}
	defer rl.Close()

	line, err := rl.Readline()
	if err != nil {
		// EOF or interrupt counts as a refusal.
		return false, nil
	}
	return isAffirmative(line), nil
}

func isAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// fatal prints a single severity-tagged diagnostic line and yields the
// failure exit code.
func fatal(err error) int {
	fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
	return 1
}
