package sqlite_test

import (
	"testing"

	"github.com/agenticsoft/gescom/internal"
	"github.com/agenticsoft/gescom/internal/partner"
	partnerSQLite "github.com/agenticsoft/gescom/internal/partner/sqlite"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestPartnerSQLite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Partner SQLite Suite")
}

var _ = Describe("Partner SQLite Repository", func() {
	var (
		db   *gorm.DB
		repo partner.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&partner.Partner{})
		Expect(err).NotTo(HaveOccurred())

		repo = partnerSQLite.NewPartnerRepository(db)
	})

	Describe("Create and GetByID", func() {
		It("should persist a partner with both names", func() {
			p := &partner.Partner{
				Kind:   partner.KindCustomer,
				NameFR: "Société Atlas",
				NameAR: "شركة أطلس",
				Phone:  "0522000001",
			}
			Expect(repo.Create(p)).To(Succeed())
			Expect(p.ID).To(BeNumerically(">", 0))

			found, err := repo.GetByID(p.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.NameFR).To(Equal("Société Atlas"))
			Expect(found.NameAR).To(Equal("شركة أطلس"))
		})

		It("should return the not-found sentinel for an unknown id", func() {
			_, err := repo.GetByID(999)
			Expect(err).To(Equal(internal.ErrPartnerNotFound))
		})
	})

	Describe("Search", func() {
		BeforeEach(func() {
			for _, p := range []*partner.Partner{
				{Kind: partner.KindCustomer, NameFR: "Société Atlas", Phone: "0522000001"},
				{Kind: partner.KindCustomer, NameFR: "Comptoir du Sud", Phone: "0522000002"},
				{Kind: partner.KindSupplier, NameFR: "Fournitures Rif", Phone: "0522000003"},
			} {
				Expect(repo.Create(p)).To(Succeed())
			}
		})

		It("should filter by kind", func() {
			customers, err := repo.Search(partner.KindCustomer, "", 50, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(customers).To(HaveLen(2))

			suppliers, err := repo.Search(partner.KindSupplier, "", 50, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(suppliers).To(HaveLen(1))
		})

		It("should match the query against the name", func() {
			found, err := repo.Search("", "Atlas", 50, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(HaveLen(1))
			Expect(found[0].NameFR).To(Equal("Société Atlas"))
		})

		It("should match the query against the phone", func() {
			found, err := repo.Search("", "0522000003", 50, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(HaveLen(1))
			Expect(found[0].Kind).To(Equal(partner.KindSupplier))
		})

		It("should return everything when kind and query are empty", func() {
			found, err := repo.Search("", "", 50, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(HaveLen(3))
		})
	})

	Describe("Update", func() {
		It("should persist changed fields", func() {
			p := &partner.Partner{Kind: partner.KindCustomer, NameFR: "Old name"}
			Expect(repo.Create(p)).To(Succeed())

			p.NameFR = "New name"
			p.Email = "new@example.com"
			Expect(repo.Update(p)).To(Succeed())

			found, err := repo.GetByID(p.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.NameFR).To(Equal("New name"))
			Expect(found.Email).To(Equal("new@example.com"))
		})
	})

	Describe("Delete", func() {
		It("should remove the partner", func() {
			p := &partner.Partner{Kind: partner.KindCustomer, NameFR: "Gone"}
			Expect(repo.Create(p)).To(Succeed())

			Expect(repo.Delete(p.ID)).To(Succeed())

			_, err := repo.GetByID(p.ID)
			Expect(err).To(Equal(internal.ErrPartnerNotFound))
		})

		It("should report a missing partner", func() {
			Expect(repo.Delete(999)).To(Equal(internal.ErrPartnerNotFound))
		})
	})
})
