package scoring

// Fallback texts for pairs missing from the lookup tables.
const (
	DefaultAction = "Prioritize improvement in this area"
	DefaultImpact = "Improves overall technical health"
)

type actionKey struct {
	area    string
	subAxis string
}

var actions = map[actionKey]string{
	{"tech-debt", "code-quality"}:        "Implement SonarQube in CI pipeline and establish code review standards",
	{"tech-debt", "architecture-domain"}: "Document bounded contexts and define clear service boundaries",
	{"tech-debt", "infrastructure"}:      "Start infrastructure-as-code initiative with Terraform or similar",
	{"tech-debt", "process-delivery"}:    "Establish release checklist and deployment calendar",
	{"tech-debt", "knowledge"}:           "Create Architecture Decision Record (ADR) template and start documenting key decisions",

	{"testing-automation", "unit-testing"}:          "Set minimum test coverage requirement and add to CI",
	{"testing-automation", "integration-testing"}:   "Implement contract testing between main services",
	{"testing-automation", "e2e-flow"}:              "Automate critical user journeys with Cypress or Playwright",
	{"testing-automation", "pipeline-reliability"}:  "Investigate and fix flaky tests, track CI success rate",
	{"testing-automation", "deployment-automation"}: "Implement one-click deployment with documented rollback",

	{"observability-stability", "monitoring"}:        "Define SLIs and SLOs for critical services",
	{"observability-stability", "alert-hygiene"}:     "Audit alerts, add runbooks, and establish on-call rotation",
	{"observability-stability", "incident-response"}: "Implement incident management process with clear severity levels",
	{"observability-stability", "logging-tracing"}:   "Centralize logs and add correlation IDs to requests",
	{"observability-stability", "postmortems"}:       "Establish blameless postmortem process for all P1/P2 incidents",

	{"delivery-dora", "deployment-frequency"}: "Reduce batch size and increase deployment frequency",
	{"delivery-dora", "lead-time"}:            "Identify and remove bottlenecks in deployment pipeline",
	{"delivery-dora", "change-failure-rate"}:  "Invest in test automation and deployment safety checks",
	{"delivery-dora", "mean-time-recovery"}:   "Improve monitoring and practice rollback procedures",
	{"delivery-dora", "rollback-frequency"}:   "Increase test coverage and implement canary deployments",

	{"governance-knowledge", "adr-discipline"}:        "Require ADRs for all significant technical decisions",
	{"governance-knowledge", "decision-traceability"}: "Link ADRs to Epics and initiatives in project management tool",
	{"governance-knowledge", "architecture-docs"}:     "Create C4 diagrams for main services and update quarterly",
	{"governance-knowledge", "ownership-clarity"}:     "Document service ownership and on-call responsibilities",
	{"governance-knowledge", "transparency"}:          "Establish regular knowledge sharing sessions across teams",
}

var impacts = map[string]string{
	"tech-debt":               "Reduces technical friction, enables faster feature delivery, and improves code maintainability",
	"testing-automation":      "Increases deployment confidence, reduces production incidents, and accelerates feedback loops",
	"observability-stability": "Enables proactive incident prevention, faster recovery times, and better user experience",
	"delivery-dora":           "Improves time-to-market, reduces deployment risk, and enables continuous delivery",
	"governance-knowledge":    "Preserves organizational knowledge, improves decision quality, and enables team scalability",
}

func actionFor(areaID, subAxisID string) string {
	if a, ok := actions[actionKey{areaID, subAxisID}]; ok {
		return a
	}
	return DefaultAction
}

func impactFor(areaID string) string {
	if i, ok := impacts[areaID]; ok {
		return i
	}
	return DefaultImpact
}
