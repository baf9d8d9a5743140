package device_test

import (
	"golang.org/x/sys/unix"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/cybercache/device"
)

func socketPair() (a, b int) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	Expect(err).NotTo(HaveOccurred())
	return fds[0], fds[1]
}

var _ = Describe("SocketReader and SocketWriter", func() {
	var a, b int

	BeforeEach(func() {
		a, b = socketPair()
		Expect(unix.SetNonblock(a, true)).To(Succeed())
		Expect(unix.SetNonblock(b, true)).To(Succeed())
	})

	AfterEach(func() {
		_ = unix.Close(a)
		_ = unix.Close(b)
	})

	It("reads exactly what was written in one step", func() {
		w := device.NewSocketWriter(a)
		r := device.NewSocketReader(b)

		res, n := w.WriteBytes([]byte("hello"))
		Expect(res).To(Equal(device.Ok))
		Expect(n).To(Equal(5))

		buf := make([]byte, 16)
		res, n = r.ReadBytes(buf)
		Expect(res).To(Equal(device.Ok))
		Expect(string(buf[:n])).To(Equal("hello"))
	})

	It("reports Retry on a non-blocking read with nothing pending", func() {
		r := device.NewSocketReader(b)
		buf := make([]byte, 16)
		res, n := r.ReadBytes(buf)
		Expect(res).To(Equal(device.Retry))
		Expect(n).To(Equal(0))
	})

	It("reports Eof once the peer half-closes", func() {
		Expect(unix.Close(a)).To(Succeed())
		r := device.NewSocketReader(b)
		buf := make([]byte, 16)
		res, _ := r.ReadBytes(buf)
		Expect(res).To(Equal(device.Eof))
	})

	It("honors the synchronous I/O switch by retrying internally", func() {
		device.SetSynchronousIO(true)
		defer device.SetSynchronousIO(false)
		Expect(device.SynchronousIO()).To(BeTrue())

		w := device.NewSocketWriter(a)
		res, _ := w.WriteBytes([]byte("sync"))
		Expect(res).To(Equal(device.Ok))

		r := device.NewSocketReader(b)
		buf := make([]byte, 16)
		res, n := r.ReadBytes(buf)
		Expect(res).To(Equal(device.Ok))
		Expect(string(buf[:n])).To(Equal("sync"))
	})
})
