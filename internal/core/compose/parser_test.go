package compose

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStack_EmptyInput(t *testing.T) {
	_, err := ParseStack("")
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = ParseStack("   \n\t  ")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestParseStack_InvalidYAML(t *testing.T) {
	_, err := ParseStack("services:\n  web:\n   image: [unclosed")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidYAML)
}

func TestParseStack_NoImageOrBuild(t *testing.T) {
	_, err := ParseStack(`
services:
  web:
    ports:
      - "8000:8000"
`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceNoImage)
}

func TestParseStack_Minimal(t *testing.T) {
	stack, err := ParseStack(`
services:
  cache:
    image: redis:5.0
    ports:
      - "6379:6379"
`)
	require.NoError(t, err)
	require.Len(t, stack.Services, 1)

	svc := stack.Service("cache")
	require.NotNil(t, svc)
	assert.Equal(t, "redis:5.0", svc.Image)
	require.Len(t, svc.Ports, 1)
	assert.Equal(t, uint32(6379), svc.Ports[0].Target)
	assert.Equal(t, uint32(6379), svc.Ports[0].Published)
	assert.True(t, svc.PublishesPort(6379))

	assert.Nil(t, stack.Service("missing"))
}

func TestParseStack_VolumeMountTypes(t *testing.T) {
	stack, err := ParseStack(`
services:
  db:
    image: postgres:12.7
    volumes:
      - db_data:/var/lib/postgresql/data
      - ./init:/docker-entrypoint-initdb.d:ro
volumes:
  db_data:
`)
	require.NoError(t, err)

	db := stack.Service("db")
	require.NotNil(t, db)
	require.Len(t, db.Volumes, 2)

	assert.Equal(t, VolumeMountTypeVolume, db.Volumes[0].Type)
	assert.Equal(t, "db_data", db.Volumes[0].Source)
	assert.True(t, db.MountsVolume("db_data"))

	assert.Equal(t, VolumeMountTypeBind, db.Volumes[1].Type)
	assert.True(t, db.Volumes[1].ReadOnly)

	assert.True(t, stack.HasVolume("db_data"))
	assert.False(t, stack.HasVolume("other"))
}

func TestValidateDevStack_RepoComposeFile(t *testing.T) {
	content, err := os.ReadFile("../../../docker-compose.yml")
	require.NoError(t, err)

	stack, err := ParseStack(string(content))
	require.NoError(t, err)

	errs := ValidateDevStack(stack)
	assert.Empty(t, errs)

	// The contract the file must keep: three services, two named volumes.
	assert.NotNil(t, stack.Service(ServicePostgres))
	assert.NotNil(t, stack.Service(ServiceRedis))
	assert.NotNil(t, stack.Service(ServiceWeb))
	assert.GreaterOrEqual(t, len(stack.Volumes), 2)
}

func TestValidateDevStack_MissingServices(t *testing.T) {
	stack, err := ParseStack(`
services:
  other:
    image: busybox
`)
	require.NoError(t, err)

	errs := ValidateDevStack(stack)
	require.NotEmpty(t, errs)

	missing := 0
	for _, e := range errs {
		if errors.Is(e, ErrMissingService) {
			missing++
		}
	}
	assert.Equal(t, 3, missing)
}

func TestValidateDevStack_Violations(t *testing.T) {
	// All three services present but the wiring between them is wrong.
	stack, err := ParseStack(`
services:
  postgres:
    image: postgres:12.7
  redis:
    image: redis:5.0
  storefront:
    image: storefront:dev
`)
	require.NoError(t, err)

	errs := ValidateDevStack(stack)
	require.NotEmpty(t, errs)

	var envMissing, depMissing, volMissing, portMissing int
	for _, e := range errs {
		switch {
		case errors.Is(e, ErrMissingEnv):
			envMissing++
		case errors.Is(e, ErrMissingDependsOn):
			depMissing++
		case errors.Is(e, ErrMissingVolume):
			volMissing++
		case errors.Is(e, ErrNoPublishedPort):
			portMissing++
		}
	}
	assert.Equal(t, 5, envMissing, "all postgres variables reported")
	assert.Equal(t, 2, depMissing, "web must depend on both backing services")
	assert.Equal(t, 2, volMissing, "postgres mount and stack volume count")
	assert.Equal(t, 1, portMissing)

	var stackErr *StackError
	require.ErrorAs(t, errs[0], &stackErr)
	assert.NotEmpty(t, stackErr.Field)
}
