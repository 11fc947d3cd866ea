package auth

import (
	"bytes"
	"crypto/cipher"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
)

// Frame layout on the wire:
//
//	uint32 BE length | nonce[12] | ciphertext
//
// where length covers nonce plus ciphertext. The nonce carries a big-endian
// send counter in its last 8 bytes; each direction counts its own sends, so
// nonces never repeat under one session key.
const (
	frameNonceSize = 12
	maxFrameSize   = 2 * 1024 * 1024
)

// Conn is a net.Conn carrying chacha20poly1305-sealed frames. Each Write
// seals one frame; Read unseals frames and serves the plaintext in as many
// calls as the caller needs.
type Conn struct {
	net.Conn

	aead    cipher.AEAD
	sendCtr uint64
	sendMu  sync.Mutex

	pending bytes.Buffer
}

// WrapConn upgrades conn to sealed framing under sessionKey. The key must be
// a chacha20poly1305 key (32 bytes); both ends derive it from the handshake
// nonces.
func WrapConn(conn net.Conn, sessionKey []byte) (net.Conn, error) {
	aead, err := chacha20poly1305.New(sessionKey)
	if err != nil {
		return nil, err
	}
	return &Conn{Conn: conn, aead: aead}, nil
}

func (c *Conn) Write(p []byte) (int, error) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	var nonce [frameNonceSize]byte
	binary.BigEndian.PutUint64(nonce[frameNonceSize-8:], c.sendCtr)
	c.sendCtr++

	frame := make([]byte, 4+frameNonceSize, 4+frameNonceSize+len(p)+c.aead.Overhead())
	copy(frame[4:], nonce[:])
	frame = c.aead.Seal(frame, nonce[:], p, nil)
	binary.BigEndian.PutUint32(frame[:4], uint32(len(frame)-4))

	if _, err := c.Conn.Write(frame); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *Conn) Read(p []byte) (int, error) {
	for c.pending.Len() == 0 {
		var hdr [4]byte
		if n, err := io.ReadFull(c.Conn, hdr[:]); err != nil {
			return n, err
		}
		length := binary.BigEndian.Uint32(hdr[:])
		if length < frameNonceSize {
			return 0, fmt.Errorf("sealed frame too short: %d bytes", length)
		}
		if length > maxFrameSize {
			return 0, io.ErrUnexpectedEOF
		}

		frame := make([]byte, length)
		if n, err := io.ReadFull(c.Conn, frame); err != nil {
			return n, err
		}

		pt, err := c.aead.Open(nil, frame[:frameNonceSize], frame[frameNonceSize:], nil)
		if err != nil {
			return 0, err
		}
		c.pending.Write(pt)
	}
	return c.pending.Read(p)
}
