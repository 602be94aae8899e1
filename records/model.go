package records

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	goCred "github.com/MrEthical07/goCred"
)

const recordSchemaV1 = 1

// ErrRecordCorrupt is returned when a stored record blob fails to decode.
var ErrRecordCorrupt = errors.New("password record corrupt")

// Record is one stored password credential. Records are immutable once
// written; upgrades produce a new Record pointing back at the old one.
type Record struct {
	ID      uuid.UUID
	Version goCred.SchemeVersion
	Hash    string

	// UpgradedFromID is the record this one replaced through a transparent
	// upgrade, or uuid.Nil for a password the user set directly.
	UpgradedFromID uuid.UUID

	CreatedAt time.Time
}

func encodeRecord(r *Record) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(recordSchemaV1)
	buf.Write(r.ID[:])

	if err := binary.Write(&buf, binary.BigEndian, uint16(r.Version)); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.BigEndian, r.CreatedAt.Unix()); err != nil {
		return nil, err
	}

	if r.UpgradedFromID == uuid.Nil {
		buf.WriteByte(0)
	} else {
		buf.WriteByte(1)
		buf.Write(r.UpgradedFromID[:])
	}

	if len(r.Hash) > 65535 {
		return nil, errors.New("password hash too long")
	}
	if err := binary.Write(&buf, binary.BigEndian, uint16(len(r.Hash))); err != nil {
		return nil, err
	}
	buf.WriteString(r.Hash)

	return buf.Bytes(), nil
}

func decodeRecord(data []byte) (*Record, error) {
	reader := bytes.NewReader(data)

	schema, err := reader.ReadByte()
	if err != nil {
		return nil, ErrRecordCorrupt
	}
	if schema != recordSchemaV1 {
		return nil, ErrRecordCorrupt
	}

	record := &Record{}

	if _, err := io.ReadFull(reader, record.ID[:]); err != nil {
		return nil, ErrRecordCorrupt
	}

	var version uint16
	if err := binary.Read(reader, binary.BigEndian, &version); err != nil {
		return nil, ErrRecordCorrupt
	}
	record.Version = goCred.SchemeVersion(version)

	var createdAt int64
	if err := binary.Read(reader, binary.BigEndian, &createdAt); err != nil {
		return nil, ErrRecordCorrupt
	}
	record.CreatedAt = time.Unix(createdAt, 0).UTC()

	hasParent, err := reader.ReadByte()
	if err != nil {
		return nil, ErrRecordCorrupt
	}
	if hasParent == 1 {
		if _, err := io.ReadFull(reader, record.UpgradedFromID[:]); err != nil {
			return nil, ErrRecordCorrupt
		}
	}

	var hashLen uint16
	if err := binary.Read(reader, binary.BigEndian, &hashLen); err != nil {
		return nil, ErrRecordCorrupt
	}

	hash := make([]byte, hashLen)
	if _, err := io.ReadFull(reader, hash); err != nil {
		return nil, ErrRecordCorrupt
	}
	record.Hash = string(hash)

	if reader.Len() != 0 {
		return nil, ErrRecordCorrupt
	}

	return record, nil
}
