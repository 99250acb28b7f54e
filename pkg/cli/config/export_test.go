package config

var (
	ParseLevel  = parseLevel
	ParseFormat = parseFormat
)

func NewRepositoryForTest(backend, projectID string) *Repository {
	return &Repository{backend: backend, projectID: projectID}
}

func NewModelForTest(reductionRate, breachBase, breachDecay float64, modelFile string) *Model {
	return &Model{
		reductionRate: reductionRate,
		breachBase:    breachBase,
		breachDecay:   breachDecay,
		modelFile:     modelFile,
	}
}

func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}
