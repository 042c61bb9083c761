package publish

const (
	productionRepositoryIdentifierConstant = "pypi"
	testRepositoryIdentifierConstant       = "testpypi"
	productionRepositoryDisplayConstant    = "PyPI"
	testRepositoryDisplayConstant          = "TestPyPI"
	productionRepositoryWebsiteConstant    = "https://pypi.org"
	testRepositoryWebsiteConstant          = "https://test.pypi.org"
	testRepositorySimpleIndexURLConstant   = "https://test.pypi.org/simple/"
	testRepositoryMenuSelectionConstant    = "1"
)

// Repository identifies a target package index.
type Repository string

// Supported package index enumerations.
const (
	RepositoryProduction Repository = Repository(productionRepositoryIdentifierConstant)
	RepositoryTest       Repository = Repository(testRepositoryIdentifierConstant)
)

// DisplayName returns the human-facing name of the repository.
func (repository Repository) DisplayName() string {
	if repository == RepositoryTest {
		return testRepositoryDisplayConstant
	}
	return productionRepositoryDisplayConstant
}

// WebsiteURL returns the account-management website for the repository.
func (repository Repository) WebsiteURL() string {
	if repository == RepositoryTest {
		return testRepositoryWebsiteConstant
	}
	return productionRepositoryWebsiteConstant
}

// ResolveRepositoryFromMenuSelection maps the numeric menu selection to a repository.
// Selection "1" resolves to TestPyPI; any other input resolves to PyPI.
func ResolveRepositoryFromMenuSelection(menuSelection string) Repository {
	if menuSelection == testRepositoryMenuSelectionConstant {
		return RepositoryTest
	}
	return RepositoryProduction
}
