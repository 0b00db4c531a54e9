// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/rand"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bsonkit/bson/bsonerr"
	"github.com/bsonkit/bson/bsonlog"
)

// ObjectID is the 12-byte BSON ObjectId variant.
type ObjectID struct {
	baseValue
	bytes [12]byte
}

func (o ObjectID) BSONType() Type { return TypeObjectID }
func (o ObjectID) ByteSize() int  { return 12 }
func (o ObjectID) String() string {
	return fmt.Sprintf("ObjectId('%s')", o.Hex())
}
func (o ObjectID) Equal(v Value) bool {
	ov, ok := v.(ObjectID)
	return ok && ov.bytes == o.bytes
}

// Hex returns the lowercase hex representation of the id.
func (o ObjectID) Hex() string { return hex.EncodeToString(o.bytes[:]) }

// Bytes returns a copy of the raw 12 bytes.
func (o ObjectID) Bytes() [12]byte { return o.bytes }

// Timestamp returns the embedded Unix-seconds timestamp (the first 4
// bytes, big endian).
func (o ObjectID) Timestamp() int64 {
	return int64(binary.BigEndian.Uint32(o.bytes[0:4]))
}

// ObjectIDFromHex parses a 24-character hex string into an ObjectID.
func ObjectIDFromHex(s string) (ObjectID, error) {
	if len(s) != 24 {
		return ObjectID{}, bsonerr.NewDecodeFailure("objectId", fmt.Sprintf("expected 24 hex characters, got %d", len(s)))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return ObjectID{}, bsonerr.NewDecodeFailure("objectId", err.Error())
	}
	var oid ObjectID
	copy(oid.bytes[:], b)
	return oid, nil
}

// process-wide ObjectID generator state: the machine identifier and
// counter are process-wide singletons, initialized at most once behind a
// lazy one-time guard; the counter increment is a wait-free atomic op.
var (
	objectIDOnce    sync.Once
	objectIDMachine [3]byte
	objectIDPid     [2]byte
	objectIDCounter uint32
)

func initObjectIDProcessState() {
	objectIDOnce.Do(func() {
		copy(objectIDMachine[:], resolveMachineID())
		pid := os.Getpid()
		objectIDPid[0] = byte(pid)
		objectIDPid[1] = byte(pid >> 8)
		// Seed the counter from a process-indifferent random source so
		// concurrently-started processes don't collide on counter=0.
		atomic.StoreUint32(&objectIDCounter, rand.New(rand.NewSource(time.Now().UnixNano())).Uint32()&0xFFFFFF)
	})
}

// resolveMachineID implements the machine-id fallback chain: first 3 bytes of
// md5(first resolvable hardware MAC address), else first 3 bytes of
// md5(hostname), else the low 3 bytes of the process id.
func resolveMachineID() []byte {
	if mac := firstHardwareAddr(); mac != nil {
		sum := md5.Sum(mac)
		return sum[:3]
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		sum := md5.Sum([]byte(host))
		return sum[:3]
	}
	bsonlog.Logf(bsonlog.Info, "objectid: no MAC address or hostname resolvable, falling back to pid-derived machine id")
	pid := os.Getpid()
	return []byte{byte(pid >> 16), byte(pid >> 8), byte(pid)}
}

func firstHardwareAddr() net.HardwareAddr {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil
	}
	for _, iface := range ifaces {
		if len(iface.HardwareAddr) == 0 {
			continue
		}
		return iface.HardwareAddr
	}
	return nil
}

// NewObjectID generates a fresh ObjectID: big-endian 4-byte Unix-seconds
// timestamp, 3-byte machine id, 2 little-endian bytes of the process id,
// and a 3-byte big-endian counter incremented modulo 2^24 from a random
// seed.
func NewObjectID() ObjectID {
	initObjectIDProcessState()

	var oid ObjectID
	binary.BigEndian.PutUint32(oid.bytes[0:4], uint32(time.Now().Unix()))
	oid.bytes[4] = objectIDMachine[0]
	oid.bytes[5] = objectIDMachine[1]
	oid.bytes[6] = objectIDMachine[2]
	oid.bytes[7] = objectIDPid[0]
	oid.bytes[8] = objectIDPid[1]

	counter := atomic.AddUint32(&objectIDCounter, 1) & 0xFFFFFF
	oid.bytes[9] = byte(counter >> 16)
	oid.bytes[10] = byte(counter >> 8)
	oid.bytes[11] = byte(counter)
	return oid
}

// NewObjectIDFromTime returns an ObjectID whose timestamp component is t
// and whose remaining bytes are either zero (timestampOnly=true, useful
// for range queries) or generated normally.
func NewObjectIDFromTime(t time.Time, timestampOnly bool) ObjectID {
	if timestampOnly {
		var oid ObjectID
		binary.BigEndian.PutUint32(oid.bytes[0:4], uint32(t.Unix()))
		return oid
	}
	oid := NewObjectID()
	binary.BigEndian.PutUint32(oid.bytes[0:4], uint32(t.Unix()))
	return oid
}
