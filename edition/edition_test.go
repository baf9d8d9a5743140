package edition_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/cybercache/edition"
)

var _ = Describe("BuildMode", func() {
	It("encodes and names a Community/Normal build", func() {
		m := edition.BuildMode{Edition: edition.Community, Subtype: edition.Normal}
		Expect(m.Name()).To(Equal("CN--"))
		Expect(m.ID()).To(Equal(byte(0)))
	})

	It("encodes and names an Enterprise/Fast/extended/instrumented build", func() {
		m := edition.BuildMode{Edition: edition.Enterprise, Subtype: edition.Fast, Extended: true, Instrumented: true}
		Expect(m.Name()).To(Equal("EFXI"))
		Expect(m.ID()).To(Equal(byte(1<<7 | 1<<5 | 1<<1 | 1<<0)))
	})
})

var _ = Describe("Version strings", func() {
	It("renders the full banner", func() {
		v := edition.Version{Major: 1, Minor: 3, Patch: 6}
		m := edition.BuildMode{Edition: edition.Community, Subtype: edition.Normal}
		Expect(edition.FullVersionString(v, m)).To(Equal("CyberCache Cluster (Community edition) 1.3.6 [CN--]"))
	})
})
