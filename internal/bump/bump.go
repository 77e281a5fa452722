// Package bump drives the read, preview, and write operations over one file.
package bump

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/conn-castle/bumpver/internal/document"
	"github.com/conn-castle/bumpver/internal/format"
	"github.com/conn-castle/bumpver/internal/fsutil"
	"github.com/conn-castle/bumpver/internal/messages"
	"github.com/conn-castle/bumpver/internal/selector"
	"github.com/conn-castle/bumpver/internal/version"
)

// ErrAborted is returned by Write when the confirmation hook declines.
var ErrAborted = errors.New(messages.WriteAborted)

// ConfirmFunc approves replacing oldVersion with newVersion in path.
type ConfirmFunc func(path, oldVersion, newVersion string) (bool, error)

// Request names the file, the selector, and the bump to apply.
type Request struct {
	Path     string
	Selector string
	// Bump is major, minor, patch, or an explicit version. Read ignores it.
	Bump string
	// Type overrides extension-based format detection when non-empty.
	Type string
	// NoLock skips the advisory lock around Write.
	NoLock bool
	// Confirm, when set, is consulted by Write before the file is replaced.
	Confirm ConfirmFunc
}

// Result describes one resolved selector and, for Preview and Write, its bump.
type Result struct {
	Path     string
	Format   format.Format
	Selector string
	Old      string
	New      string
	// Before is the file content as read.
	Before []byte
	// After is the serialized document with the bump applied.
	After []byte
}

var readFileFn = os.ReadFile
var replaceFileFn = fsutil.ReplaceFile
var withFileLockFn = fsutil.WithFileLock

type target struct {
	path   string
	format format.Format
	sel    selector.Selector
}

func resolveTarget(ctx context.Context, req Request) (target, error) {
	if err := ctx.Err(); err != nil {
		return target{}, err
	}
	if strings.TrimSpace(req.Path) == "" {
		return target{}, errors.New(messages.FileRequired)
	}
	sel, err := selector.Parse(req.Selector)
	if err != nil {
		return target{}, err
	}
	path, err := fsutil.ExpandPath(req.Path)
	if err != nil {
		return target{}, err
	}
	f, err := format.Detect(path, req.Type)
	if err != nil {
		return target{}, err
	}
	return target{path: path, format: f, sel: sel}, nil
}

// load reads and parses the target and resolves the current version string.
func load(t target) (document.Document, *Result, error) {
	data, err := readFileFn(t.path)
	if err != nil {
		return nil, nil, fmt.Errorf(messages.FileReadFailedFmt, t.path, err)
	}
	doc, err := document.Parse(t.format, data)
	if err != nil {
		return nil, nil, err
	}
	old, err := doc.ReadString(t.sel)
	if err != nil {
		return nil, nil, err
	}
	return doc, &Result{
		Path:     t.path,
		Format:   t.format,
		Selector: t.sel.String(),
		Old:      old,
		Before:   data,
	}, nil
}

// apply computes the bump and renders the new document in memory.
func apply(t target, instr version.Instruction) (*Result, error) {
	doc, res, err := load(t)
	if err != nil {
		return nil, err
	}
	next, err := version.Bump(res.Old, instr)
	if err != nil {
		return nil, err
	}
	if err := doc.WriteString(t.sel, next); err != nil {
		return nil, err
	}
	out, err := doc.Encode()
	if err != nil {
		return nil, err
	}
	res.New = next
	res.After = out
	return res, nil
}

// Read returns the string stored at the selector. Old holds the value.
func Read(ctx context.Context, req Request) (*Result, error) {
	t, err := resolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}
	_, res, err := load(t)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Preview computes the bumped version and document without touching the file.
func Preview(ctx context.Context, req Request) (*Result, error) {
	t, err := resolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}
	instr, err := version.ParseInstruction(req.Bump)
	if err != nil {
		return nil, err
	}
	return apply(t, instr)
}

// Write bumps the version and atomically replaces the file. Unless NoLock is
// set, the read-modify-write runs under an exclusive advisory lock on the file's
// directory.
// Any failure, including a declined confirmation, leaves the file unchanged.
func Write(ctx context.Context, req Request) (*Result, error) {
	t, err := resolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}
	instr, err := version.ParseInstruction(req.Bump)
	if err != nil {
		return nil, err
	}

	var res *Result
	persist := func() error {
		r, err := apply(t, instr)
		if err != nil {
			return err
		}
		if req.Confirm != nil {
			ok, err := req.Confirm(r.Path, r.Old, r.New)
			if err != nil {
				return err
			}
			if !ok {
				return ErrAborted
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := replaceFileFn(t.path, r.After); err != nil {
			return err
		}
		res = r
		return nil
	}

	if req.NoLock {
		err = persist()
	} else {
		err = withFileLockFn(t.path, persist)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}
