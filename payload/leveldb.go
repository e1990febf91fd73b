// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payload

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/chainweb-spv/spvcore/merklelog"
	"github.com/dsnet/compress/bzip2"
	"github.com/syndtr/goleveldb/leveldb"
)

// Record kind prefixes inside the shared leveldb namespace.
const (
	kindPayload      byte = 0x01
	kindTransactions byte = 0x02
	kindOutputs      byte = 0x03
)

// LevelStore is a Store backed by a goleveldb database. Transaction
// and output blobs are bzip2-compressed before storage — block bodies
// are the bulkiest content a node holds, and the teacher's ffldb
// applies the same "compress the payload, leave the index alone"
// split for its block store.
type LevelStore struct {
	db *leveldb.DB
}

// OpenLevelStore opens (or creates) a goleveldb store at path.
func OpenLevelStore(path string) (*LevelStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("payload: opening leveldb at %s: %w", path, err)
	}
	return &LevelStore{db: db}, nil
}

// Close releases the underlying leveldb handle.
func (s *LevelStore) Close() error { return s.db.Close() }

func key(kind byte, hash merklelog.Hash) []byte {
	out := make([]byte, 0, 1+merklelog.HashSize)
	out = append(out, kind)
	out = append(out, hash[:]...)
	return out
}

func compress(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	if err != nil {
		return nil, fmt.Errorf("payload: bzip2 writer: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return nil, fmt.Errorf("payload: bzip2 compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("payload: bzip2 close: %w", err)
	}
	return buf.Bytes(), nil
}

func decompress(compressed []byte) ([]byte, error) {
	r, err := bzip2.NewReader(bytes.NewReader(compressed), nil)
	if err != nil {
		return nil, fmt.Errorf("payload: bzip2 reader: %w", err)
	}
	defer r.Close()
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("payload: bzip2 decompress: %w", err)
	}
	return raw, nil
}

func encodeSeq(seq [][]byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.BigEndian, uint32(len(seq))); err != nil {
		return nil, err
	}
	for _, item := range seq {
		if err := binary.Write(&buf, binary.BigEndian, uint32(len(item))); err != nil {
			return nil, err
		}
		buf.Write(item)
	}
	return compress(buf.Bytes())
}

func decodeSeq(compressed []byte) ([][]byte, error) {
	raw, err := decompress(compressed)
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(raw)
	var count uint32
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, fmt.Errorf("payload: decoding sequence count: %w", err)
	}
	out := make([][]byte, count)
	for i := uint32(0); i < count; i++ {
		var n uint32
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return nil, fmt.Errorf("payload: decoding item length: %w", err)
		}
		item := make([]byte, n)
		if _, err := io.ReadFull(r, item); err != nil {
			return nil, fmt.Errorf("payload: decoding item: %w", err)
		}
		out[i] = item
	}
	return out, nil
}

func (s *LevelStore) LookupPayload(hash merklelog.Hash) (*BlockPayload, bool, error) {
	raw, err := s.db.Get(key(kindPayload, hash), nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("payload: leveldb get: %w", err)
	}
	if len(raw) != 2*merklelog.HashSize {
		return nil, false, fmt.Errorf("payload: corrupt payload record for %s", hash)
	}
	var p BlockPayload
	copy(p.TransactionsHash[:], raw[:merklelog.HashSize])
	copy(p.OutputsHash[:], raw[merklelog.HashSize:])
	return &p, true, nil
}

func (s *LevelStore) PutPayload(p *BlockPayload) error {
	hash, err := p.Hash()
	if err != nil {
		return err
	}
	raw := append(append([]byte{}, p.TransactionsHash[:]...), p.OutputsHash[:]...)
	if err := s.db.Put(key(kindPayload, hash), raw, nil); err != nil {
		return fmt.Errorf("payload: leveldb put: %w", err)
	}
	logger.Tracef("stored payload %s in leveldb", hash)
	return nil
}

func (s *LevelStore) LookupTransactions(hash merklelog.Hash) (Transactions, bool, error) {
	raw, err := s.db.Get(key(kindTransactions, hash), nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("payload: leveldb get: %w", err)
	}
	items, err := decodeSeq(raw)
	if err != nil {
		return nil, false, err
	}
	out := make(Transactions, len(items))
	for i, item := range items {
		out[i] = Transaction(item)
	}
	return out, true, nil
}

func (s *LevelStore) PutTransactions(txs Transactions) error {
	hash, err := txs.Root()
	if err != nil {
		return err
	}
	items := make([][]byte, len(txs))
	for i, tx := range txs {
		items[i] = tx
	}
	enc, err := encodeSeq(items)
	if err != nil {
		return err
	}
	if err := s.db.Put(key(kindTransactions, hash), enc, nil); err != nil {
		return fmt.Errorf("payload: leveldb put: %w", err)
	}
	logger.Tracef("stored transactions root %s in leveldb", hash)
	return nil
}

func (s *LevelStore) LookupOutputs(hash merklelog.Hash) (Outputs, bool, error) {
	raw, err := s.db.Get(key(kindOutputs, hash), nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("payload: leveldb get: %w", err)
	}
	items, err := decodeSeq(raw)
	if err != nil {
		return nil, false, err
	}
	out := make(Outputs, len(items))
	for i, item := range items {
		out[i] = Output(item)
	}
	return out, true, nil
}

func (s *LevelStore) PutOutputs(outs Outputs) error {
	hash, err := outs.Root()
	if err != nil {
		return err
	}
	items := make([][]byte, len(outs))
	for i, out := range outs {
		items[i] = out
	}
	enc, err := encodeSeq(items)
	if err != nil {
		return err
	}
	if err := s.db.Put(key(kindOutputs, hash), enc, nil); err != nil {
		return fmt.Errorf("payload: leveldb put: %w", err)
	}
	logger.Tracef("stored outputs root %s in leveldb", hash)
	return nil
}
