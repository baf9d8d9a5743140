package wire_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/cybercache/types"
	"github.com/nabbar/cybercache/wire"
)

var _ = Describe("Encode and Check", func() {
	It("round-trips a header-only message with no payload", func() {
		b := wire.NewHeaderBuilder(0)
		b.AddString([]byte("PING"))

		d := wire.NewDescriptor(types.OpPing, false, false, false, false)
		out, err := wire.Encode(wire.Message{Descriptor: d, Header: b.Bytes()})
		Expect(err).NotTo(HaveOccurred())

		Expect(wire.Descriptor(out[0])).To(Equal(d))

		it, err := wire.NewHeaderIterator(out[1:])
		Expect(err).NotTo(HaveOccurred())
		c, err := it.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(string(c.String)).To(Equal("PING"))
	})

	It("embeds the integrity marker immediately before the payload", func() {
		b := wire.NewHeaderBuilder(0)
		b.AddNumber(4)
		d := wire.NewDescriptor(types.OpGet, true, false, true, false)

		out, err := wire.Encode(wire.Message{Descriptor: d, Header: b.Bytes(), Payload: []byte("data")})
		Expect(err).NotTo(HaveOccurred())

		markerAt := len(out) - len("data") - len(types.IntegrityMarker)
		Expect(out[markerAt : markerAt+4]).To(Equal(types.IntegrityMarker[:]))
		Expect(out[len(out)-4:]).To(Equal([]byte("data")))
	})

	It("appends a verifiable auth trailer for an admin request", func() {
		key := []byte("admin-secret")
		b := wire.NewHeaderBuilder(0)
		b.AddString([]byte("SHUTDOWN"))
		d := wire.NewDescriptor(types.OpShutdown, false, true, false, true)

		out, err := wire.Encode(wire.Message{
			Descriptor: d,
			Header:     b.Bytes(),
			AuthAlgo:   wire.AuthXXHash,
			AuthKey:    key,
		})
		Expect(err).NotTo(HaveOccurred())

		header := b.Bytes()
		trailer := out[len(out)-8:]
		err = wire.Check(d, header, nil, nil, trailer, byte(wire.AuthXXHash), key)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects a corrupted integrity marker", func() {
		err := wire.Check(
			wire.NewDescriptor(types.OpGet, true, false, true, false),
			nil, []byte{0, 0, 0, 0}, []byte("x"), nil, 0, nil,
		)
		Expect(err).To(HaveOccurred())
	})
})
