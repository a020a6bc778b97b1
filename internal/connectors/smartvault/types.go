package smartvault

// Token is the parsed form of the XML token responses SmartVault returns
// from its dtoken/rtoken endpoints.
type Token struct {
	AccessToken           string `xml:"access_token"`
	RefreshToken          string `xml:"refresh_token"`
	TokenType             string `xml:"token_type"`
	ExpiresIn             int    `xml:"expires_in"`
	RefreshTokenExpiresIn int    `xml:"refresh_token_expires_in"`
	ID                    string `xml:"id"`
}

type tokenEnvelope struct {
	Message Token `xml:"message"`
}

// PersonName is one name entry on a person. Field casing follows the
// SmartVault API, which expects Pascal-case keys here.
type PersonName struct {
	FirstName  string `json:"FirstName"`
	MiddleName string `json:"MiddleName"`
	LastName   string `json:"LastName"`
}

type EmailAddress struct {
	Address string `json:"address"`
}

type PhoneNumber struct {
	Number string `json:"Number"`
}

type Person struct {
	Names          []PersonName   `json:"names"`
	EmailAddresses []EmailAddress `json:"email_addresses"`
	PhoneNumbers   []PhoneNumber  `json:"phone_numbers"`
}

type Tag struct {
	Value string `json:"value"`
}

// AccountingClient is the client definition nested inside a firm-client
// creation request.
type AccountingClient struct {
	TypeQualifier      string   `json:"type_qualifier"`
	Persons            []Person `json:"persons"`
	SalutationOverride string   `json:"client_salutation_override,omitempty"`
	EndOfFiscalYear    int      `json:"end_of_fiscal_year"`
	Tags               []Tag    `json:"tags"`
	Aliases            []string `json:"aliases"`
	ClientID           string   `json:"client_id"`
}

type accounting struct {
	Client AccountingClient `json:"client"`
}

type smartVaultBody struct {
	Accounting accounting `json:"accounting"`
}

type entityMeta struct {
	EntityDefinition string `json:"entity_definition"`
}

type entityBody struct {
	MetaData   entityMeta     `json:"meta_data"`
	SmartVault smartVaultBody `json:"smart_vault"`
}

// ClientEntity is the full PUT body for creating a firm client.
type ClientEntity struct {
	Entity entityBody `json:"entity"`
}

// NewIndividualClient wraps an AccountingClient into the envelope the
// firm-client endpoint expects.
func NewIndividualClient(client AccountingClient) ClientEntity {
	client.TypeQualifier = "Individual"
	if client.EndOfFiscalYear == 0 {
		client.EndOfFiscalYear = 12
	}
	if client.Tags == nil {
		client.Tags = []Tag{}
	}
	if client.Aliases == nil {
		client.Aliases = []string{}
	}
	return ClientEntity{
		Entity: entityBody{
			MetaData:   entityMeta{EntityDefinition: "SmartVault.Accounting.Client"},
			SmartVault: smartVaultBody{Accounting: accounting{Client: client}},
		},
	}
}

type firmEntity struct {
	ID string `json:"id"`
}

type firmListing struct {
	Entities []firmEntity `json:"entities"`
}
