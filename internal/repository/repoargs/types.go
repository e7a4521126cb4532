package repoargs

type RepositoryName string

const (
	UserRepoName      RepositoryName = "user"
	CustomerRepoName  RepositoryName = "customer"
	InvoiceRepoName   RepositoryName = "invoice"
	DashboardRepoName RepositoryName = "dashboard"
)
