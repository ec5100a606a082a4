package core

import "github.com/huangsam/testaudit/schema"

// DefaultRuleSet is the PMD rule catalogue tracked by the violations report.
// Violations of rules outside this catalogue are dropped while parsing.
var DefaultRuleSet = schema.RuleSet{
	{
		Name:        "AvoidBranchingStatementAsLastInLoop",
		Description: "Avoid branching statements (return, break, continue) as the last statement in a loop.",
		RuleRef:     "category/java/errorprone.xml/AvoidBranchingStatementAsLastInLoop",
	},
	{
		Name:        "EmptyCatchBlock",
		Description: "Avoid empty catch blocks to ensure exceptions are handled properly.",
		RuleRef:     "category/java/errorprone.xml/EmptyCatchBlock",
	},
	{
		Name:        "JUnitTestContainsTooManyAsserts",
		Description: "JUnit tests should not contain too many asserts. Split complex tests into smaller ones.",
		RuleRef:     "category/java/bestpractices.xml/JUnitTestContainsTooManyAsserts",
	},
	{
		Name:        "JUnitTestsShouldIncludeAssert",
		Description: "JUnit tests should include at least one assert statement.",
		RuleRef:     "category/java/bestpractices.xml/JUnitTestsShouldIncludeAssert",
	},
	{
		Name:            "MethodNamingConventions",
		Description:     "Test method names should follow the pattern: 'shouldDoSomethingWhenCondition'.",
		RuleRef:         "category/java/codestyle.xml/MethodNamingConventions",
		ExpectedPattern: "^should[A-Z][a-zA-Z0-9]*$",
	},
	{
		Name:            "ClassNamingConventions",
		Description:     "Test class names should end with 'Test'.",
		RuleRef:         "category/java/codestyle.xml/ClassNamingConventions",
		ExpectedPattern: "^[A-Z][a-zA-Z0-9]*Test$",
	},
}
