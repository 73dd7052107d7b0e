package offer

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LocalStorage", func() {
	var (
		basePath string
		storage  *LocalStorage
	)

	BeforeEach(func() {
		basePath = filepath.Join(GinkgoT().TempDir(), "screenshots")

		var err error
		storage, err = NewLocalStorage(basePath)
		Expect(err).NotTo(HaveOccurred())
	})

	It("creates the storage directory", func() {
		info, err := os.Stat(basePath)
		Expect(err).NotTo(HaveOccurred())
		Expect(info.IsDir()).To(BeTrue())
	})

	It("round-trips a file", func() {
		path, err := storage.Save("offer.png", []byte("png bytes"))
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(Equal("offer.png"))

		data, err := storage.Get(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(Equal([]byte("png bytes")))
	})

	It("errors when getting a missing file", func() {
		_, err := storage.Get("missing.png")
		Expect(err).To(HaveOccurred())
	})

	It("deletes a file", func() {
		path, err := storage.Save("offer.png", []byte("png bytes"))
		Expect(err).NotTo(HaveOccurred())

		Expect(storage.Delete(path)).To(Succeed())

		_, err = storage.Get(path)
		Expect(err).To(HaveOccurred())
	})

	It("errors when deleting a missing file", func() {
		Expect(storage.Delete("missing.png")).NotTo(Succeed())
	})
})
