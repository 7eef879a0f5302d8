package ivr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFlow_SequentialEdges(t *testing.T) {
	t.Parallel()

	doc := mustParse(ivrDoc(
		`<incomingCall><moduleId>g1</moduleId><singleDescendant>g2</singleDescendant></incomingCall>`,
		`<play><moduleId>g2</moduleId><singleDescendant>g3</singleDescendant><exceptionalDescendant>g3</exceptionalDescendant></play>`,
		`<hangup><moduleId>g3</moduleId></hangup>`,
	))
	flow := BuildFlow(doc)

	require.Len(t, flow.Modules, 3)
	require.Len(t, flow.Edges, 3)
	assert.Equal(t, FlowEdge{From: 0, To: 1, Label: "singleDescendant"}, flow.Edges[0])
	assert.Equal(t, FlowEdge{From: 1, To: 2, Label: "singleDescendant"}, flow.Edges[1])
	assert.Equal(t, FlowEdge{From: 1, To: 2, Label: "exceptionalDescendant"}, flow.Edges[2])
}

func TestBuildFlow_BranchEdgesUseBranchName(t *testing.T) {
	t.Parallel()

	doc := mustParse(ivrDoc(
		`<menu><moduleId>g1</moduleId><branches>`+
			`<entry><name>sales</name><desc>g2</desc></entry>`+
			`<entry><name>support</name><desc>g3</desc></entry>`+
			`</branches></menu>`,
		`<skillTransfer><moduleId>g2</moduleId></skillTransfer>`,
		`<skillTransfer><moduleId>g3</moduleId></skillTransfer>`,
	))
	flow := BuildFlow(doc)

	require.Len(t, flow.Edges, 2)
	assert.Equal(t, FlowEdge{From: 0, To: 1, Label: "sales"}, flow.Edges[0])
	assert.Equal(t, FlowEdge{From: 0, To: 2, Label: "support"}, flow.Edges[1])
}

func TestBuildFlow_DanglingReferenceSkipped(t *testing.T) {
	t.Parallel()

	doc := mustParse(ivrDoc(`<play><moduleId>g1</moduleId><singleDescendant>missing</singleDescendant></play>`))
	flow := BuildFlow(doc)
	assert.Empty(t, flow.Edges)
	assert.Len(t, flow.Modules, 1)
}

func TestBuildFlow_ScalarFieldsResolved(t *testing.T) {
	t.Parallel()

	doc := mustParse(ivrDoc(`<getDigits><moduleName>PIN</moduleName><maxDigits>4</maxDigits><prompts><prompt><name>EnterPIN</name></prompt></prompts></getDigits>`))
	flow := BuildFlow(doc)

	require.Len(t, flow.Modules, 1)
	step := flow.Modules[0]
	assert.Equal(t, "getDigits", step.Type)
	assert.Equal(t, "PIN", step.Name)
	assert.Equal(t, "4", step.Fields["maxDigits"])
	// prompts has element children, so it is not a scalar field
	assert.NotContains(t, step.Fields, "prompts")
}
