package sqlite_test

import (
	"testing"

	"github.com/agenticsoft/gescom/internal/payment"
	paymentSQLite "github.com/agenticsoft/gescom/internal/payment/sqlite"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestPaymentSQLite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Payment SQLite Suite")
}

var _ = Describe("Payment SQLite Repository", func() {
	var (
		db      *gorm.DB
		repo    payment.RepositoryAPI
		summary payment.SummaryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		// Keep the reader on the same in-memory database as the writer
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		err = db.AutoMigrate(&payment.Payment{}, &payment.CashMovement{})
		Expect(err).NotTo(HaveOccurred())

		repo = paymentSQLite.NewPaymentRepository(db)
		summary = paymentSQLite.NewCashSummaryReader(sqlx.NewDb(sqlDB, "sqlite3"))
	})

	Describe("Payments", func() {
		It("should record a payment against a document", func() {
			docID := int64(42)
			p := &payment.Payment{DocumentID: &docID, Method: payment.MethodCheque, Amount: 150, PaidAt: "2025-03-01"}
			Expect(repo.CreatePayment(p)).To(Succeed())
			Expect(p.ID).To(BeNumerically(">", 0))
		})

		It("should record a loose receipt without a document", func() {
			p := &payment.Payment{Method: payment.MethodCash, Amount: 80, PaidAt: "2025-03-01"}
			Expect(repo.CreatePayment(p)).To(Succeed())

			payments, err := repo.ListPayments(50, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(payments).To(HaveLen(1))
			Expect(payments[0].DocumentID).To(BeNil())
		})

		It("should list payments newest first", func() {
			Expect(repo.CreatePayment(&payment.Payment{Method: payment.MethodCash, Amount: 10, PaidAt: "2025-03-01"})).To(Succeed())
			Expect(repo.CreatePayment(&payment.Payment{Method: payment.MethodCash, Amount: 20, PaidAt: "2025-03-02"})).To(Succeed())

			payments, err := repo.ListPayments(50, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(payments).To(HaveLen(2))
			Expect(payments[0].Amount).To(BeNumerically("~", 20, 1e-9))
		})
	})

	Describe("Cash register", func() {
		It("should record movements in both directions", func() {
			Expect(repo.CreateMovement(&payment.CashMovement{Movement: payment.MovementIn, Amount: 100, Label: "Vente comptoir"})).To(Succeed())
			Expect(repo.CreateMovement(&payment.CashMovement{Movement: payment.MovementOut, Amount: 30, Label: "Fournitures"})).To(Succeed())

			movements, err := repo.ListMovements(50, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(movements).To(HaveLen(2))
		})

		Describe("Summary", func() {
			It("should be zero on an empty register", func() {
				s, err := summary.CashSummary()
				Expect(err).NotTo(HaveOccurred())
				Expect(s.TotalIn).To(BeZero())
				Expect(s.TotalOut).To(BeZero())
				Expect(s.Balance).To(BeZero())
			})

			It("should aggregate inflows, outflows and the balance", func() {
				Expect(repo.CreateMovement(&payment.CashMovement{Movement: payment.MovementIn, Amount: 100})).To(Succeed())
				Expect(repo.CreateMovement(&payment.CashMovement{Movement: payment.MovementIn, Amount: 50.5})).To(Succeed())
				Expect(repo.CreateMovement(&payment.CashMovement{Movement: payment.MovementOut, Amount: 30})).To(Succeed())

				s, err := summary.CashSummary()
				Expect(err).NotTo(HaveOccurred())
				Expect(s.TotalIn).To(BeNumerically("~", 150.5, 1e-9))
				Expect(s.TotalOut).To(BeNumerically("~", 30, 1e-9))
				Expect(s.Balance).To(BeNumerically("~", 120.5, 1e-9))
			})
		})
	})
})
