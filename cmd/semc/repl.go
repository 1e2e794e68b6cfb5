package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tanema/semc/src/check"
)

// session keeps the source accepted so far. Every new input is checked
// together with everything before it using a fresh checker, so a rejected
// input never leaves declarations behind.
type session struct {
	accepted string
	pending  strings.Builder
	known    map[string]bool
}

func newSession(seed string) (*session, error) {
	sess := &session{known: map[string]bool{}}
	if strings.TrimSpace(seed) == "" {
		return sess, nil
	}
	if _, err := sess.feed(seed); err != nil {
		return nil, err
	}
	return sess, nil
}

// feed adds src to the pending input and checks it. io.EOF is returned when
// the input is incomplete. On success the declarations that did not exist
// before are returned.
func (sess *session) feed(src string) ([]string, error) {
	sess.pending.WriteString(src + "\n")
	candidate := sess.accepted + sess.pending.String()

	checker, err := check.New(cfg)
	if err != nil {
		return nil, err
	}
	res, err := checker.Source("<repl>", candidate)
	if errors.Is(err, io.EOF) {
		return nil, err
	}
	sess.pending.Reset()
	if err != nil {
		return nil, err
	}

	sess.accepted = candidate
	added := []string{}
	for _, id := range res.Globals {
		if !sess.known[id.Name] {
			sess.known[id.Name] = true
			added = append(added, fmt.Sprintf("%s: %s", id.Name, id))
		}
	}
	return added, nil
}

func (sess *session) reset() { sess.pending.Reset() }

func (sess *session) incomplete() bool { return sess.pending.Len() > 0 }

func repl(seed string) error {
	sess, err := newSession(seed)
	if err != nil {
		return err
	}
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer func() { _ = rl.Close() }()

	for {
		src, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if sess.incomplete() {
					rl.SetPrompt("> ")
					sess.reset()
					fmt.Fprint(os.Stderr, "Press ctrl-c again to quit.\n")
					continue
				}
				break
			} else if errors.Is(err, io.EOF) {
				break
			}
			fmt.Fprintln(os.Stderr, err)
			continue
		}

		added, err := sess.feed(src)
		if errors.Is(err, io.EOF) {
			rl.SetPrompt("...> ")
			continue
		}
		rl.SetPrompt("> ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		for _, decl := range added {
			fmt.Fprintln(os.Stderr, decl)
		}
	}
	return nil
}
