package main

import (
	"fmt"
	"strings"

	"github.com/hanok2/pich8/common"
)

// Save states use this extension; it is appended when the user leaves
// it off.
const stateExtension = ".p8s"

type dialogKind int

const (
	dialogSave dialogKind = iota
	dialogLoad
)

type dialogResult struct {
	kind dialogKind
	path string
	err  error
}

// promptPath asks for a file path on stdin from a worker goroutine and
// delivers the answer on a one-shot channel. The frame loop keeps
// running and polls the channel, so the window stays responsive while
// the prompt is open.
func promptPath(kind dialogKind) <-chan dialogResult {
	ch := make(chan dialogResult, 1)

	verb := "save"
	if kind == dialogLoad {
		verb = "load"
	}
	fmt.Printf("Enter path to %s state (%s): ", verb, stateExtension)

	go func() {
		line, err := common.InputReader.ReadString('\n')
		if err != nil {
			ch <- dialogResult{kind: kind, err: err}
			return
		}

		path := strings.TrimSpace(line)
		if path == "" {
			ch <- dialogResult{kind: kind, err: fmt.Errorf("no path given")}
			return
		}
		if !strings.HasSuffix(path, stateExtension) {
			path += stateExtension
		}
		ch <- dialogResult{kind: kind, path: path}
	}()

	return ch
}
