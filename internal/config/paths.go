package config

// ProjectConfigFile is the project config file name, looked up in the
// repository directory.
const ProjectConfigFile = ".tagsmith.yml"
