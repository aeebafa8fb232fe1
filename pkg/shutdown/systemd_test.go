package shutdown

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus/hooks/test"
)

var _ = Describe("NotifySystemd", func() {
	It("only waits for cancellation without a notify socket", func() {
		GinkgoT().Setenv("NOTIFY_SOCKET", "")
		logger, hook := test.NewNullLogger()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(NotifySystemd(logger).Run(ctx)).To(Succeed())
		Expect(hook.AllEntries()).To(BeEmpty())
	})

	It("reports ready and stopping on the notify socket", func() {
		// unix socket paths are short, so avoid the test temp dir
		dir, err := os.MkdirTemp("", "sd")
		Expect(err).ToNot(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)

		addr := &net.UnixAddr{Name: filepath.Join(dir, "notify"), Net: "unixgram"}
		conn, err := net.ListenUnixgram("unixgram", addr)
		Expect(err).ToNot(HaveOccurred())
		DeferCleanup(conn.Close)
		GinkgoT().Setenv("NOTIFY_SOCKET", addr.Name)

		read := func() string {
			buf := make([]byte, 64)
			Expect(conn.SetReadDeadline(time.Now().Add(5 * time.Second))).To(Succeed())
			n, err := conn.Read(buf)
			Expect(err).ToNot(HaveOccurred())
			return string(buf[:n])
		}

		logger, _ := test.NewNullLogger()
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- NotifySystemd(logger).Run(ctx) }()

		Expect(read()).To(Equal("READY=1"))
		cancel()
		Expect(read()).To(Equal("STOPPING=1"))
		Eventually(done).Should(Receive(BeNil()))
	})
})
