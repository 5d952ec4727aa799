package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type reportEmailData struct {
	Kind      string
	StartDate string
	EndDate   string
}
