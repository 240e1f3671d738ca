package service

const (
	BalanceTolerance = 0.01 // balances at or below this are treated as repaid

	MaxLoanBalance   = 1_000_000.0 // £1m
	MaxSalary        = 10_000_000.0
	MaxSalaryGrowth  = 0.5  // 50% a year
	MinSalaryGrowth  = -0.5 // pay cuts are allowed
	MaxInterestRate  = 0.5
	MaxHorizonYears  = 50
	MaxOverpayment   = 100_000.0 // per month
	MaxGrowthSteps   = 51        // scenarios per salary growth request
	MinGrowthStep    = 0.001
	DefaultGrowthMin = 0.0
	DefaultGrowthMax = 0.06
	DefaultStep      = 0.01
)

const (
	CalculatorRepayment    = "repayment"
	CalculatorOverpayment  = "overpayment"
	CalculatorSalaryGrowth = "salary_growth"
	CalculatorTotalCost    = "total_cost"
)
