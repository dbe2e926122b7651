package domain

type SettingKey string

const (
	SettingBankName      SettingKey = "bank_name"
	SettingAccountHolder SettingKey = "account_holder"
	SettingAccountNumber SettingKey = "account_number"
	SettingIFSCCode      SettingKey = "ifsc_code"
	SettingUPIID         SettingKey = "upi_id"
	SettingUPIQRCodeURL  SettingKey = "upi_qr_code_url"
)

var BankSettingKeys = []SettingKey{
	SettingBankName,
	SettingAccountHolder,
	SettingAccountNumber,
	SettingIFSCCode,
	SettingUPIID,
	SettingUPIQRCodeURL,
}

type (
	BankDetails struct {
		BankName      string
		AccountHolder string
		AccountNumber string
		IFSCCode      string
		UPIID         string
		UPIQRCodeURL  string
	}

	// A BankDetailsUpdate holds only the fields to change.
	BankDetailsUpdate struct {
		BankName      *string
		AccountHolder *string
		AccountNumber *string
		IFSCCode      *string
		UPIID         *string
		UPIQRCodeURL  *string
	}
)

// BankDetailsFromSettings assembles the record, missing keys stay empty.
func BankDetailsFromSettings(m map[SettingKey]string) BankDetails {
	return BankDetails{
		BankName:      m[SettingBankName],
		AccountHolder: m[SettingAccountHolder],
		AccountNumber: m[SettingAccountNumber],
		IFSCCode:      m[SettingIFSCCode],
		UPIID:         m[SettingUPIID],
		UPIQRCodeURL:  m[SettingUPIQRCodeURL],
	}
}

func (u BankDetailsUpdate) Settings() map[SettingKey]string {
	m := make(map[SettingKey]string)
	set := func(k SettingKey, v *string) {
		if v != nil {
			m[k] = *v
		}
	}
	set(SettingBankName, u.BankName)
	set(SettingAccountHolder, u.AccountHolder)
	set(SettingAccountNumber, u.AccountNumber)
	set(SettingIFSCCode, u.IFSCCode)
	set(SettingUPIID, u.UPIID)
	set(SettingUPIQRCodeURL, u.UPIQRCodeURL)
	return m
}
