package networkdefinition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vault_reporter/internal/app/port"
)

type discardLogger struct{}

func (discardLogger) Info(string, ...any) {}
func (discardLogger) Debug(string, ...any) {}
func (discardLogger) Warn(string, ...any) {}
func (discardLogger) Error(string, ...any) {}
func (d discardLogger) With(...any) port.Logger { return d }

func TestLookups(t *testing.T) {
	p := NewNetworkDefinitionProvider(discardLogger{})

	def, ok := p.GetNetworkDefinitionByName(" Base ")
	require.True(t, ok)
	assert.EqualValues(t, 8453, def.ChainID)
	assert.Equal(t, "https://basescan.org/address/0x1", def.AddressURL("0x1"))

	def, ok = p.GetNetworkDefinitionByChainID(1)
	require.True(t, ok)
	assert.Equal(t, "mainnet", def.Identifier)

	_, ok = p.GetNetworkDefinitionByName("ethereum")
	assert.False(t, ok)
	_, ok = p.GetNetworkDefinitionByChainID(999999)
	assert.False(t, ok)
}

func TestGetAllNetworkDefinitionsIsSortedCopy(t *testing.T) {
	p := NewNetworkDefinitionProvider(discardLogger{})

	all := p.GetAllNetworkDefinitions()
	require.Len(t, all, len(allKnownDefinitions))
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ChainID, all[i].ChainID)
	}

	all[0].Identifier = "mutated"
	assert.Equal(t, "mainnet", p.GetAllNetworkDefinitions()[0].Identifier)
}

func TestNilProvider(t *testing.T) {
	var p *NetworkDefinitionProvider
	assert.Empty(t, p.GetAllNetworkDefinitions())
	_, ok := p.GetNetworkDefinitionByName("base")
	assert.False(t, ok)
}
