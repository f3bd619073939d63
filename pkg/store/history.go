package store

import (
	"encoding/binary"
	"strings"

	bolt "go.etcd.io/bbolt"
	"src.smolcalc.dev/pkg/mode"
	. "src.smolcalc.dev/pkg/store/storedefs"
)

const bucketHistory = "history"

func init() {
	initDB["initialize evaluation history table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketHistory))
		return err
	}
}

// NextSeq returns the next sequence number of the history.
func (s *dbStore) NextSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		seq = tx.Bucket([]byte(bucketHistory)).Sequence() + 1
		return nil
	})
	return int(seq), err
}

// Add adds an evaluation to the history. Consecutive duplicates are stored
// only once; the sequence number of the existing entry is returned then.
func (s *dbStore) Add(m mode.Mode, text string) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketHistory))
		value := marshalEntry(m, text)
		if k, v := b.Cursor().Last(); k != nil && string(v) == string(value) {
			seq = unmarshalSeq(k)
			return nil
		}
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), value)
	})
	return int(seq), err
}

// Del deletes the history entry with the given sequence number.
func (s *dbStore) Del(seq int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketHistory)).Delete(marshalSeq(uint64(seq)))
	})
}

// Entry queries the history entry with the specified sequence number.
func (s *dbStore) Entry(seq int) (Entry, error) {
	var e Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketHistory)).Get(marshalSeq(uint64(seq)))
		if v == nil {
			return ErrNoMatchingEntry
		}
		e = unmarshalEntry(uint64(seq), v)
		return nil
	})
	return e, err
}

// Entries returns all entries with sequence numbers in [from, upto).
func (s *dbStore) Entries(from, upto int) ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketHistory)).Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			entries = append(entries, unmarshalEntry(unmarshalSeq(k), v))
		}
		return nil
	})
	return entries, err
}

// Next finds the first entry after the given sequence number (inclusive)
// whose text has the given prefix.
func (s *dbStore) Next(from int, prefix string) (Entry, error) {
	var e Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketHistory)).Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil; k, v = c.Next() {
			if candidate := unmarshalEntry(unmarshalSeq(k), v); strings.HasPrefix(candidate.Text, prefix) {
				e = candidate
				return nil
			}
		}
		return ErrNoMatchingEntry
	})
	return e, err
}

// Prev finds the last entry before the given sequence number (exclusive)
// whose text has the given prefix.
func (s *dbStore) Prev(upto int, prefix string) (Entry, error) {
	var e Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketHistory)).Cursor()

		var v []byte
		k, _ := c.Seek(marshalSeq(uint64(upto)))
		if k == nil { // upto > LAST
			k, v = c.Last()
		} else {
			k, v = c.Prev()
		}

		for ; k != nil; k, v = c.Prev() {
			if candidate := unmarshalEntry(unmarshalSeq(k), v); strings.HasPrefix(candidate.Text, prefix) {
				e = candidate
				return nil
			}
		}
		return ErrNoMatchingEntry
	})
	return e, err
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}

// Values are the mode token and the text, separated by a newline. Mode tokens
// never contain newlines.
func marshalEntry(m mode.Mode, text string) []byte {
	return []byte(m.Token() + "\n" + text)
}

func unmarshalEntry(seq uint64, v []byte) Entry {
	token, text, _ := strings.Cut(string(v), "\n")
	m, _ := mode.Parse(token)
	return Entry{Seq: int(seq), Mode: m, Text: text}
}
