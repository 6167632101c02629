// Package rdb reads the subset of the RDB snapshot format this server
// needs to rehydrate its keyspace at startup: the header, auxiliary
// fields, string-type key/value records, and their expiry opcodes. Any
// opcode byte this package does not recognize is skipped without error
// and parsing continues with the byte after it.
package rdb

import (
	"bufio"
	"fmt"
	"io"

	"redislite/internal/protocol"
	"redislite/internal/store"
)

const (
	opAux           = 0xFA
	opSelectDB      = 0xFE
	opResizeDB      = 0xFB
	opExpireMs      = 0xFC
	opExpireSec     = 0xFD
	opEOF           = 0xFF
	valueTypeString = 0x00
)

// Snapshot is the parsed contents of an RDB file relevant to this
// server: the version, four well-known auxiliary fields, and the string
// keyspace with its pending expiry times (Unix milliseconds).
type Snapshot struct {
	Version int

	AuxRedisVer  *string
	AuxRedisBits *string
	AuxCtime     *string
	AuxUsedMem   *string

	Values  map[store.Key][]byte
	Expires map[store.Key]uint64
}

// Read parses r as an RDB file. It supports only database 0 and the
// string value type. A SELECTDB opcode naming a non-zero database is
// reported as an error. Any other unrecognized byte in opcode position,
// including the type byte of a non-string record, is skipped on its own
// and parsing resumes at the next byte, so the payload of such a record
// is itself read as further opcodes.
func Read(r io.Reader) (*Snapshot, error) {
	br := bufio.NewReader(r)

	if err := readMagic(br); err != nil {
		return nil, err
	}
	version, err := readVersion(br)
	if err != nil {
		return nil, err
	}

	out := &Snapshot{
		Version: version,
		Values:  make(map[store.Key][]byte),
		Expires: make(map[store.Key]uint64),
	}

	var pendingExpireMs *uint64

	for {
		opcode, err := readByte(br)
		if err != nil {
			return nil, err
		}

		switch opcode {
		case opAux:
			key, err := readString(br)
			if err != nil {
				return nil, err
			}
			value, err := readString(br)
			if err != nil {
				return nil, err
			}
			assignAux(out, string(key), string(value))

		case opSelectDB:
			dbID, err := readLength(br)
			if err != nil {
				return nil, err
			}
			if dbID != 0 {
				return nil, ioErrorf("SELECTDB %d: multiple databases are not supported", dbID)
			}

		case opResizeDB:
			if _, err := readLength(br); err != nil {
				return nil, err
			}
			if _, err := readLength(br); err != nil {
				return nil, err
			}

		case opExpireMs:
			ms, err := readUint64LE(br)
			if err != nil {
				return nil, err
			}
			pendingExpireMs = &ms

		case opExpireSec:
			sec, err := readUint32LE(br)
			if err != nil {
				return nil, err
			}
			ms := uint64(sec) * 1000
			pendingExpireMs = &ms

		case valueTypeString:
			key, err := readString(br)
			if err != nil {
				return nil, err
			}
			value, err := readString(br)
			if err != nil {
				return nil, err
			}
			k := store.NewKey(key)
			if pendingExpireMs != nil {
				out.Expires[k] = *pendingExpireMs
				pendingExpireMs = nil
			}
			out.Values[k] = value

		case opEOF:
			return out, nil

		default:
			// Complex value types (list/set/hash/zset/stream, and any
			// opcode this package does not know about) are out of this
			// server's scope and are ignored, as the format allows.
		}
	}
}

func assignAux(s *Snapshot, key, value string) {
	switch key {
	case "redis-ver":
		s.AuxRedisVer = &value
	case "redis-bits":
		s.AuxRedisBits = &value
	case "ctime":
		s.AuxCtime = &value
	case "used-mem":
		s.AuxUsedMem = &value
	}
}

func ioErrorf(format string, args ...any) error {
	return fmt.Errorf("rdb: %w", &protocol.Error{Kind: protocol.KindIO, Msg: fmt.Sprintf(format, args...)})
}
