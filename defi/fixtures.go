package defi

// Built-in yield catalogs, one fixture table per protocol. They serve two
// roles: the data set when no live yield endpoint is configured, and the
// deterministic fallback when the live endpoint fails.

var aaveCatalog = []YieldOpportunity{
	{Protocol: "Aave V3", Asset: "USDC", APY: 4.25, TotalLiquidityUSD: 1_250_000_000, RiskLevel: RiskLow, Chain: "Ethereum", MinimumDeposit: 0.01},
	{Protocol: "Aave V3", Asset: "USDT", APY: 3.95, TotalLiquidityUSD: 890_000_000, RiskLevel: RiskLow, Chain: "Ethereum", MinimumDeposit: 0.01},
	{Protocol: "Aave V3", Asset: "DAI", APY: 4.15, TotalLiquidityUSD: 650_000_000, RiskLevel: RiskLow, Chain: "Ethereum", MinimumDeposit: 0.01},
}

var compoundCatalog = []YieldOpportunity{
	{Protocol: "Compound V3", Asset: "USDC", APY: 3.85, TotalLiquidityUSD: 980_000_000, RiskLevel: RiskLow, Chain: "Ethereum", MinimumDeposit: 0.01},
	{Protocol: "Compound V3", Asset: "DAI", APY: 3.65, TotalLiquidityUSD: 420_000_000, RiskLevel: RiskLow, Chain: "Ethereum", MinimumDeposit: 0.01},
}

var curveCatalog = []YieldOpportunity{
	{Protocol: "Curve Finance", Asset: "USDT", APY: 5.12, TotalLiquidityUSD: 2_100_000_000, RiskLevel: RiskMedium, Chain: "Ethereum", MinimumDeposit: 10},
	{Protocol: "Curve Finance", Asset: "USDC", APY: 5.25, TotalLiquidityUSD: 2_100_000_000, RiskLevel: RiskMedium, Chain: "Ethereum", MinimumDeposit: 10},
	{Protocol: "Curve Finance", Asset: "DAI", APY: 5.08, TotalLiquidityUSD: 2_100_000_000, RiskLevel: RiskMedium, Chain: "Ethereum", MinimumDeposit: 10},
}

var yearnCatalog = []YieldOpportunity{
	{Protocol: "Yearn Finance", Asset: "USDC", APY: 6.45, TotalLiquidityUSD: 450_000_000, RiskLevel: RiskMedium, Chain: "Ethereum", MinimumDeposit: 0.01},
	{Protocol: "Yearn Finance", Asset: "DAI", APY: 6.25, TotalLiquidityUSD: 320_000_000, RiskLevel: RiskMedium, Chain: "Ethereum", MinimumDeposit: 0.01},
}

// BuiltinCatalog is the union of every protocol fixture table, in the fixed
// protocol order.
func BuiltinCatalog() []YieldOpportunity {
	out := make([]YieldOpportunity, 0, len(aaveCatalog)+len(compoundCatalog)+len(curveCatalog)+len(yearnCatalog))
	out = append(out, aaveCatalog...)
	out = append(out, compoundCatalog...)
	out = append(out, curveCatalog...)
	out = append(out, yearnCatalog...)
	return out
}

// BuiltinSources returns one static source per protocol fixture table.
func BuiltinSources() []Source {
	return []Source{
		NewStaticSource("aave", aaveCatalog),
		NewStaticSource("compound", compoundCatalog),
		NewStaticSource("curve", curveCatalog),
		NewStaticSource("yearn", yearnCatalog),
	}
}
