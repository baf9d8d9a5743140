package device_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/cybercache/device"
)

var _ = Describe("FileReader and FileWriter", func() {
	It("round-trips through a temp file and reports Eof at the end", func() {
		f, err := os.CreateTemp("", "cybercache-device-*")
		Expect(err).NotTo(HaveOccurred())
		defer os.Remove(f.Name())

		w := device.NewFileWriter(f)
		res, n := w.WriteBytes([]byte("payload"))
		Expect(res).To(Equal(device.Ok))
		Expect(n).To(Equal(7))

		_, err = f.Seek(0, 0)
		Expect(err).NotTo(HaveOccurred())

		r := device.NewFileReader(f)
		buf := make([]byte, 32)
		res, n = r.ReadBytes(buf)
		Expect(res).To(Equal(device.Ok))
		Expect(string(buf[:n])).To(Equal("payload"))

		res, n = r.ReadBytes(buf)
		Expect(res).To(Equal(device.Eof))
		Expect(n).To(Equal(0))

		Expect(f.Close()).To(Succeed())
	})
})
