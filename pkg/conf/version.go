package conf

// BackendVersion current backend version
const BackendVersion = "1.2.0"

// RequiredDBVersion schema version matching this backend
const RequiredDBVersion = "1.2.0"
