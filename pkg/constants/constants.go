// Package constants provides shared constants used throughout codesync:
// file permissions, default input and output locations, and the fixed
// coding used to tag synonym designations.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Default locations, matching the layout of the fhir.tx.support.r4 package.
const (
	// DefaultExistingPath is the code system that new concepts are merged into.
	DefaultExistingPath = "./packages/fhir.tx.support.r4/package/CodeSystem-nciThesaurus-fragment.json"

	// DefaultNewCodesPath is the proposed-codes document.
	DefaultNewCodesPath = "new-codes.json"

	// DefaultThesaurusPath is the NCI Thesaurus flat file.
	DefaultThesaurusPath = "Thesaurus.txt"

	// DefaultOutputPath is where the merged code system is written.
	DefaultOutputPath = "output.json"
)

// Environment variables recognised in addition to viper's automatic binding.
const (
	EnvThesaurus    = "THESAURUS"
	EnvNewCodes     = "NEW_CODES"
	EnvSuppressInfo = "SUPPRESS_INFO"
)

// Synonym designation use coding.
const (
	// SNOMEDSystem is the coding system of the designation use.
	SNOMEDSystem = "http://snomed.info/sct"

	// SynonymCode is the SNOMED CT code for "Synonym".
	SynonymCode = "900000000000013009"
)

// ResourceTypeCodeSystem is the FHIR resourceType expected on every document.
const ResourceTypeCodeSystem = "CodeSystem"

// ThesaurusColumns is the fixed column count of Thesaurus.txt.
const ThesaurusColumns = 9

// ThesaurusListSeparator separates multi-valued thesaurus columns.
const ThesaurusListSeparator = "|"
