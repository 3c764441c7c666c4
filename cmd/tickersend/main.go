package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/tarm/serial"
)

func main() {
	var (
		port   = flag.String("port", "", "Serial device of the ticker (e.g. /dev/ttyUSB0).")
		baud   = flag.Int("baud", 115200, "Baud rate.")
		delay  = flag.Duration("delay", 100*time.Millisecond, "Pause after each line so the ticker frames them separately.")
		listen = flag.Duration("listen", 0, "Copy ticker output to stdout for this long after sending.")
	)
	flag.Parse()

	if *port == "" {
		fatalf("usage: tickersend -port /dev/ttyUSB0 [-baud 115200] [-delay 100ms] [message ...]\n       (reads lines from stdin when no message is given)")
	}

	lines := flag.Args()
	if len(lines) == 0 {
		var err error
		if lines, err = readLines(os.Stdin); err != nil {
			fatalf("stdin: %v", err)
		}
	}

	p, err := serial.OpenPort(&serial.Config{Name: *port, Baud: *baud, ReadTimeout: 100 * time.Millisecond})
	if err != nil {
		fatalf("open %s: %v", *port, err)
	}
	if err := run(p, lines, *delay, *listen, os.Stdout); err != nil {
		fatalf("%v", err)
	}
}

// run sends lines over port, optionally copies replies to out, and always
// closes port.
func run(port io.ReadWriteCloser, lines []string, delay, listen time.Duration, out io.Writer) (err error) {
	defer func() {
		if cerr := port.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close: %w", cerr)
		}
	}()

	if err := sendLines(port, lines, delay, time.Sleep); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	if listen > 0 {
		if err := copyFor(out, port, listen); err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	}
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

// sendLines writes each line terminated by '\n', pausing between lines.
func sendLines(w io.Writer, lines []string, delay time.Duration, sleep func(time.Duration)) error {
	for i, line := range lines {
		line = strings.TrimRight(line, "\r\n")
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		if delay > 0 && sleep != nil {
			sleep(delay)
		}
	}
	return nil
}

// copyFor copies r to w until d elapses. A read timeout reports io.EOF on
// some platforms; it is treated as "no data yet".
func copyFor(w io.Writer, r io.Reader, d time.Duration) error {
	deadline := time.Now().Add(d)
	buf := make([]byte, 128)
	for time.Now().Before(deadline) {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}
	return nil
}
