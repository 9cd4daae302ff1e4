package mainmodel

// PaymentInstitution is a disbursement destination (bank or PIX participant).
type PaymentInstitution struct {
	ID       uint64 `gorm:"column:id;primaryKey" json:"id"`
	Name     string `gorm:"column:name;type:varchar(100);not null" json:"name"`
	ISPB     string `gorm:"column:ispb;type:varchar(8)" json:"ispb"`
	IsActive bool   `gorm:"column:is_active;not null;default:true" json:"isActive"`
}

func (PaymentInstitution) TableName() string { return "iso_payment_institution" }

// InstitutionRouting carries the bank-routing fields for one customer's
// disbursements at one payment institution.
type InstitutionRouting struct {
	ID                   uint64 `gorm:"column:id;primaryKey" json:"id"`
	IDCustomer           uint64 `gorm:"column:id_customer;not null;index" json:"idCustomer"`
	IDPaymentInstitution uint64 `gorm:"column:id_payment_institution;not null" json:"idPaymentInstitution"`
	CompeCode            string `gorm:"column:compe_code;type:varchar(3);not null" json:"compeCode"`
	BankBranchNumber     string `gorm:"column:bank_branch_number;type:varchar(10);not null" json:"bankBranchNumber"`
	AccountNumber        string `gorm:"column:account_number;type:varchar(20);not null" json:"accountNumber"`
	AccountDigit         string `gorm:"column:account_digit;type:varchar(2)" json:"accountDigit"`
	PixKey               string `gorm:"column:pix_key;type:varchar(80)" json:"pixKey"`
	IsActive             bool   `gorm:"column:is_active;not null;default:true" json:"isActive"`
}

func (InstitutionRouting) TableName() string { return "iso_institution_routing" }
