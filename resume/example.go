package resume

// Example 返回内置的示例简历，供 "example" 命令与测试使用。
func Example() *Document {
	doc := &Document{
		Name: "Jane Smith",
		Contact: Contact{
			Phone:    "(555) 987-6543",
			Email:    "jane.smith@email.com",
			Location: "San Francisco, CA",
			LinkedIn: "https://linkedin.com/in/janesmith",
			GitHub:   "https://github.com/janesmith",
		},
		WorkExperience: []Job{
			{
				Company:  "TECH INNOVATIONS INC.",
				Title:    "Senior Software Engineer",
				Location: "San Francisco, CA",
				Dates:    "March 2021 - Present",
				Tagline:  "A fast-growing SaaS company building next-generation developer tools for enterprise teams.",
				Responsibilities: Lines{
					"Architected and deployed a microservices platform handling 50M+ API calls daily, improving system reliability to 99.99% uptime",
					"Led a cross-functional team of 8 engineers through an agile migration, reducing sprint cycle time by 35%",
					"Designed and implemented a real-time data pipeline using Kafka and PostgreSQL, cutting report generation time from 4 hours to 12 minutes",
					"Mentored 4 junior developers through structured code reviews and pair programming sessions",
				},
			},
			{
				Company:  "DATAFLOW SYSTEMS",
				Title:    "Software Engineer",
				Location: "Austin, TX",
				Dates:    "June 2018 - February 2021",
				Tagline:  "A mid-size analytics company providing business intelligence solutions to Fortune 500 clients.",
				Responsibilities: Lines{
					"Built a customer-facing dashboard using React and D3.js, increasing user engagement by 45%",
					"Optimized database queries and implemented caching strategies, reducing average page load time by 60%",
					"Developed automated testing suite with 95% code coverage using Jest and Cypress",
					"Collaborated with product managers to define technical requirements for 12 major feature releases",
				},
			},
		},
		Education: []Education{
			{
				Institution:    "University of California, Berkeley",
				Location:       "Berkeley, CA",
				GraduationDate: "May 2018",
				Details:        "Bachelor of Science in Computer Science | Dean's List 2016-2018 | GPA: 3.85",
			},
		},
		Skills: Skills{
			{Key: "technologies", Items: []string{"Python", "JavaScript", "TypeScript", "React", "Node.js", "PostgreSQL", "Docker", "Kubernetes", "AWS", "Git", "Kafka", "Redis"}},
			{Key: "hard_skills", Items: []string{"System Design", "Microservices Architecture", "Agile/Scrum", "Technical Leadership", "CI/CD", "Performance Optimization"}},
			{Key: "language_skills", Text: "Fluent in English and Spanish"},
		},
	}
	Normalize(doc)
	return doc
}
