package circuit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// ErrSyntax is returned for statements the parser does not understand.
var ErrSyntax = errors.New("syntax error")

var (
	qregRegex   = regexp.MustCompile(`^qreg\s+q\[(\d+)\]\s*;?$`)
	singleRegex = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\]\s*;?$`)
	twoRegex    = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\]\s*,\s*q\[(\d+)\]\s*;?$`)
	flipRegex   = regexp.MustCompile(`^flip\s*;?$`)
)

// ParseError reports a problem on one input line.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads a circuit in the QASM subset described in the package
// documentation. The result is validated before it is returned.
func Parse(r io.Reader) (*Circuit, error) {
	c := &Circuit{}
	sc := bufio.NewScanner(r)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if i := strings.Index(text, "//"); i >= 0 {
			text = strings.TrimSpace(text[:i])
		}
		if text == "" || isIgnored(text) {
			continue
		}

		if err := c.parseStatement(text); err != nil {
			return nil, &ParseError{Line: line, Text: text, Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func isIgnored(text string) bool {
	for _, prefix := range []string{"OPENQASM", "include", "creg", "barrier"} {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	return false
}

func (c *Circuit) parseStatement(text string) error {
	if m := qregRegex.FindStringSubmatch(text); m != nil {
		if c.Qubits != 0 {
			return fmt.Errorf("%w: register declared twice", ErrSyntax)
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return fmt.Errorf("%w: %w", ErrSyntax, err)
		}
		c.Qubits = n
		return nil
	}

	if c.Qubits == 0 {
		return ErrNoRegister
	}

	if flipRegex.MatchString(text) {
		c.Flip()
		return nil
	}

	if m := twoRegex.FindStringSubmatch(text); m != nil {
		op, err := lookup(m[1], 2)
		if err != nil {
			return err
		}
		ctrl, err := strconv.Atoi(m[2])
		if err != nil {
			return fmt.Errorf("%w: %w", ErrSyntax, err)
		}
		targ, err := strconv.Atoi(m[3])
		if err != nil {
			return fmt.Errorf("%w: %w", ErrSyntax, err)
		}
		in := Instruction{Op: op, Ctrl: ctrl, Targ: targ}
		if err := c.check(in); err != nil {
			return err
		}
		c.Instructions = append(c.Instructions, in)
		return nil
	}

	if m := singleRegex.FindStringSubmatch(text); m != nil {
		op, err := lookup(m[1], 1)
		if err != nil {
			return err
		}
		targ, err := strconv.Atoi(m[2])
		if err != nil {
			return fmt.Errorf("%w: %w", ErrSyntax, err)
		}
		in := Instruction{Op: op, Targ: targ}
		if err := c.check(in); err != nil {
			return err
		}
		c.Instructions = append(c.Instructions, in)
		return nil
	}

	return ErrSyntax
}

func lookup(name string, arity int) (Op, error) {
	op, ok := ParseOp(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownOp, name)
	}
	if op.Arity() != arity {
		return 0, fmt.Errorf("%w: %s takes %d qubit(s), got %d", ErrSyntax, op, op.Arity(), arity)
	}
	return op, nil
}
