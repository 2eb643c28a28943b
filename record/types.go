package record

// Type is a record field type code, as carried in each entry's record
// group of a Password Safe V3 stream.
type Type byte

// Defined record type codes.
const (
	UUID                     Type = 0x01
	Group                    Type = 0x02
	Title                    Type = 0x03
	UserName                 Type = 0x04
	Notes                    Type = 0x05
	Password                 Type = 0x06
	CreationTime             Type = 0x07
	PasswordModificationTime Type = 0x08
	LastAccessTime           Type = 0x09
	PasswordExpiryTime       Type = 0x0A
	LastModificationTime     Type = 0x0C
	URL                      Type = 0x0D
	Autotype                 Type = 0x0E
	PasswordHistory          Type = 0x0F
	PasswordPolicy           Type = 0x10
	PasswordExpiryInterval   Type = 0x11
	RunCommand               Type = 0x12
	EmailAddress             Type = 0x14

	CreditCardNumber             Type = 0x1E
	CreditCardExpiration         Type = 0x1F
	CreditCardVerificationValue  Type = 0x20
	CreditCardPin                Type = 0x21

	// EndOfEntry is the sentinel that terminates one entry's record group.
	EndOfEntry Type = 0xFF
)
