// Package command maps decoded RESP2 request frames onto keyspace
// operations and builds the response frame, implementing the server's
// command table: PING, ECHO, GET, SET, KEYS, CONFIG GET, INFO.
package command

import (
	"bytes"
	"strconv"
	"strings"

	"redislite/internal/config"
	"redislite/internal/logger"
	"redislite/internal/protocol"
	"redislite/internal/store"
)

var errBadCmd = protocol.NewError("BAD_CMD Invalid command received")

// Dispatcher holds the state a command handler needs: the keyspace and
// the read-only config view.
type Dispatcher struct {
	Keyspace *store.Keyspace
	Config   config.Config
}

// Handle decodes req as a command request and returns the response
// frame. req must be a non-null Array of Bulk frames, as every RESP2
// client sends; any other shape, or an empty array, or an unrecognized
// command name, yields errBadCmd.
func (d *Dispatcher) Handle(req protocol.Frame) protocol.Frame {
	args, ok := requestArgs(req)
	if !ok || len(args) == 0 {
		logger.Warn("unhandled request: %+v", req)
		return errBadCmd
	}

	name := strings.ToUpper(string(args[0]))
	rest := args[1:]

	switch name {
	case "PING":
		return cmdPing(rest)
	case "ECHO":
		return cmdEcho(rest)
	case "GET":
		return d.cmdGet(rest)
	case "SET":
		return d.cmdSet(rest)
	case "KEYS":
		return d.cmdKeys(rest)
	case "CONFIG":
		return d.cmdConfig(rest)
	case "INFO":
		return cmdInfo(rest)
	default:
		logger.Warn("unhandled command %q", name)
		return errBadCmd
	}
}

func requestArgs(req protocol.Frame) ([][]byte, bool) {
	if req.Kind != protocol.Array || req.Null {
		return nil, false
	}
	out := make([][]byte, len(req.Items))
	for i, item := range req.Items {
		if item.Kind != protocol.Bulk || item.Null {
			return nil, false
		}
		out[i] = item.Bulk
	}
	return out, true
}

func cmdPing(args [][]byte) protocol.Frame {
	if len(args) == 0 {
		return protocol.NewSimpleText("PONG")
	}
	if len(args) == 1 {
		return protocol.NewBulk(args[0])
	}
	return errBadCmd
}

func cmdEcho(args [][]byte) protocol.Frame {
	if len(args) != 1 {
		return errBadCmd
	}
	return protocol.NewBulk(args[0])
}

func (d *Dispatcher) cmdGet(args [][]byte) protocol.Frame {
	if len(args) != 1 {
		return errBadCmd
	}
	v, ok := d.Keyspace.Get(store.NewKey(args[0]))
	if !ok {
		return protocol.NewNullBulk()
	}
	return protocol.NewBulk(v)
}

func (d *Dispatcher) cmdSet(args [][]byte) protocol.Frame {
	if len(args) < 2 {
		return errBadCmd
	}
	key, value := args[0], args[1]
	rest := args[2:]

	var pxMillis *uint64
	for len(rest) > 0 {
		opt := strings.ToUpper(string(rest[0]))
		switch opt {
		case "PX":
			if len(rest) < 2 {
				return errBadCmd
			}
			n, err := strconv.ParseUint(string(rest[1]), 10, 64)
			if err != nil {
				return errBadCmd
			}
			pxMillis = &n
			rest = rest[2:]
		default:
			return errBadCmd
		}
	}

	d.Keyspace.Set(store.NewKey(key), value)
	if pxMillis != nil {
		d.Keyspace.ExpireIn(store.NewKey(key), *pxMillis)
	}
	return protocol.NewSimpleText("OK")
}

func (d *Dispatcher) cmdKeys(args [][]byte) protocol.Frame {
	if len(args) != 1 || !bytes.Equal(args[0], []byte("*")) {
		return errBadCmd
	}
	keys := d.Keyspace.Keys()
	items := make([]protocol.Frame, len(keys))
	for i, k := range keys {
		items[i] = protocol.NewBulk(k.Bytes())
	}
	return protocol.NewArray(items)
}

func (d *Dispatcher) cmdConfig(args [][]byte) protocol.Frame {
	if len(args) != 2 || strings.ToUpper(string(args[0])) != "GET" {
		return errBadCmd
	}
	name := strings.ToLower(string(args[1]))
	value, ok := d.Config.Get(name)
	if !ok {
		return protocol.NewNullBulk()
	}
	return protocol.NewArray([]protocol.Frame{
		protocol.NewBulk([]byte(name)),
		protocol.NewBulk([]byte(value)),
	})
}

func cmdInfo(_ [][]byte) protocol.Frame {
	return protocol.NewBulk([]byte("# Replication\r\nrole:master\r\n"))
}
