// Package interactive provides the interactive command-line interface for
// edidflash: a readline shell bound to one device session.
package interactive

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/edid-tools/edidflash/pkg/edid"
	"github.com/edid-tools/edidflash/pkg/transfer"
)

// Shell handles interactive mode for edidflash.
type Shell struct {
	session   *transfer.Session
	simulated bool
	rl        *readline.Instance
}

// New creates a new interactive shell over session.
func New(session *transfer.Session, simulated bool) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "edid> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Shell{session: session, simulated: simulated, rl: rl}, nil
}

// Run starts the interactive command loop. It returns when the user exits.
func (s *Shell) Run() error {
	defer s.rl.Close()

	s.printHelp()

	for {
		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return nil
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		fields := strings.Fields(input)
		switch fields[0] {
		case "read":
			s.cmdRead()
		case "dump":
			s.cmdDump()
		case "probe":
			s.cmdProbe()
		case "write":
			if len(fields) < 2 {
				fmt.Fprintln(s.rl.Stderr(), "usage: write FILE")
				continue
			}
			s.cmdWrite(fields[1])
		case "help":
			s.printHelp()
		case "exit", "quit":
			return nil
		default:
			fmt.Fprintf(s.rl.Stderr(), "unknown command %q (try help)\n", fields[0])
		}
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintf(s.rl.Stdout(), `Commands:
  read        Read the block and print it as contiguous hex
  dump        Read the block and print a 16-byte-per-row hex dump
  probe       Check the device for an EDID signature
  write FILE  Validate hex text from FILE and write it to the device
  help        Show this help
  exit        Leave the shell

Bus %d, %s mode.
`, s.session.Bus(), s.modeName())
}

func (s *Shell) modeName() string {
	if s.simulated {
		return "simulation"
	}
	return "danger"
}

func (s *Shell) cmdRead() {
	blob, err := s.session.ReadEDID()
	if err != nil {
		fmt.Fprintf(s.rl.Stderr(), "read failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), blob.EncodeHex())
}

func (s *Shell) cmdDump() {
	blob, err := s.session.ReadEDID()
	if err != nil {
		fmt.Fprintf(s.rl.Stderr(), "read failed: %v\n", err)
		return
	}
	fmt.Fprint(s.rl.Stdout(), FormatDump(blob))
}

func (s *Shell) cmdProbe() {
	sig, err := s.session.ReadSignature()
	if err != nil {
		fmt.Fprintf(s.rl.Stderr(), "probe failed: %v\n", err)
		return
	}
	if err := edid.ValidateSignature(sig); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "no EDID signature: % x\n", sig)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "EDID signature present")
}

func (s *Shell) cmdWrite(path string) {
	text, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(s.rl.Stderr(), "failed to read %s: %v\n", path, err)
		return
	}
	data, err := edid.ParseHex(string(text))
	if err != nil {
		fmt.Fprintf(s.rl.Stderr(), "invalid hex text: %v\n", err)
		return
	}

	err = s.session.WriteEDID(data, transfer.WriteOptions{
		SkipProbe: s.simulated,
		Confirm:   s.confirm,
	})
	switch {
	case err == transfer.ErrDeclined:
		fmt.Fprintln(s.rl.Stdout(), "Aborted, nothing written.")
	case err != nil:
		fmt.Fprintf(s.rl.Stderr(), "write failed: %v\n", err)
	default:
		fmt.Fprintf(s.rl.Stdout(), "Wrote %d bytes.\n", min(len(data), edid.Size))
	}
}

// confirm asks for the write confirmation on the shell's own readline so
// the prompt does not fight with the command prompt.
func (s *Shell) confirm() (bool, error) {
	s.rl.SetPrompt("Really write? (N/y): ")
	defer s.rl.SetPrompt("edid> ")

	line, err := s.rl.Readline()
	if err != nil {
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// FormatDump renders a blob as rows of 16 hex bytes with offset prefixes.
func FormatDump(blob edid.Blob) string {
	var sb strings.Builder
	for row := 0; row < edid.Size; row += 16 {
		fmt.Fprintf(&sb, "%02x:", row)
		for col := 0; col < 16; col++ {
			fmt.Fprintf(&sb, " %02x", blob[row+col])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
