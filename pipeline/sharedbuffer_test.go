package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/cybercache/memdomain"
	"github.com/nabbar/cybercache/pipeline"
	"github.com/nabbar/cybercache/types"
)

var _ = Describe("SharedBuffer", func() {
	var rt *memdomain.Runtime

	BeforeEach(func() {
		rt = memdomain.NewRuntime()
	})

	It("starts refcounted to 1 and fills the inline aux region first", func() {
		b := pipeline.NewSharedBuffer(rt, types.Session)
		Expect(b.RefCount()).To(Equal(int32(1)))

		h, err := b.AppendHeader(16)
		Expect(err).NotTo(HaveOccurred())
		Expect(h).To(HaveLen(16))
		Expect(rt.Used(types.Session)).To(Equal(int64(0)), "16 bytes fit the inline aux region, no domain charge")
	})

	It("spills into domain-accounted memory once the aux region is exhausted", func() {
		b := pipeline.NewSharedBuffer(rt, types.Session)
		_, err := b.AppendHeader(40)
		Expect(err).NotTo(HaveOccurred())
		Expect(rt.Used(types.Session)).To(Equal(int64(40)))
	})

	It("frees domain memory only when the last reference is released", func() {
		b := pipeline.NewSharedBuffer(rt, types.Session)
		_, err := b.AppendPayload(100)
		Expect(err).NotTo(HaveOccurred())
		Expect(rt.Used(types.Session)).To(Equal(int64(100)))

		b.Retain()
		b.Release()
		Expect(rt.Used(types.Session)).To(Equal(int64(100)), "one reference still outstanding")

		b.Release()
		Expect(rt.Used(types.Session)).To(Equal(int64(0)))
	})

	It("copies only the header on a shallow clone, header and payload on a full clone", func() {
		b := pipeline.NewSharedBuffer(rt, types.Session)
		hb, _ := b.AppendHeader(8)
		copy(hb, []byte("abcdefgh"))
		pb, _ := b.AppendPayload(4)
		copy(pb, []byte("data"))

		shallow := b.Clone(false)
		Expect(shallow.Header()).To(Equal(b.Header()))
		Expect(shallow.Payload()).To(BeEmpty())

		full := b.Clone(true)
		Expect(full.Payload()).To(Equal(b.Payload()))
	})

	It("empties the source payload region on TakePayload", func() {
		b := pipeline.NewSharedBuffer(rt, types.Session)
		pb, _ := b.AppendPayload(4)
		copy(pb, []byte("data"))

		taken := b.TakePayload()
		Expect(string(taken)).To(Equal("data"))
		Expect(b.Payload()).To(BeEmpty())
	})
})
