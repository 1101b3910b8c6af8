package hh

import (
	"bytes"
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"os"
	"testing"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

func fileResponse(t *testing.T, statusCode int, path string) *http.Response {
	file, err := os.ReadFile(path)
	require.NoError(t, err)

	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(bytes.NewBuffer(file)),
	}
}

func stringResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func Test_HHClient_GetEmployer_ShouldBeSuccessful(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.String() == "https://api.hh.ru/employers/3529" &&
			req.Header.Get("HH-User-Agent") == "hh-sync-test" &&
			req.Header.Get("Authorization") == "Bearer secret"
	})).Return(fileResponse(t, http.StatusOK, "testdata/get_employer.json"), nil)

	client := NewClient()
	client.SetHTTPClient(mockClient)
	client.SetUserAgent("hh-sync-test")
	client.SetToken("secret")

	employer, err := client.GetEmployer(context.Background(), "3529")
	assert.NoError(err)
	require.NotNil(t, employer.ID)
	assert.Equal("3529", *employer.ID)
	assert.Equal("СБЕР", *employer.Name)
	assert.Equal("https://hh.ru/employer/3529", *employer.AlternateUrl)
	assert.Equal(2, employer.OpenVacancies)
	mockClient.AssertExpectations(t)
}

func Test_HHClient_GetEmployerVacancies_ShouldBeSuccessful(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.String() == "https://hh.example/vacancies?employer_id=3529&per_page=100"
	})).Return(fileResponse(t, http.StatusOK, "testdata/get_vacancies.json"), nil)

	client := NewClient()
	client.SetBaseURL("https://hh.example/")
	client.SetHTTPClient(mockClient)

	vacancies, err := client.GetEmployerVacancies(context.Background(), VacancyQuery{EmployerID: "3529", PerPage: 100})
	assert.NoError(err)
	require.Len(t, vacancies, 2)

	assert.Equal("Senior Go Engineer", *vacancies[0].Name)
	require.NotNil(t, vacancies[0].Salary)
	assert.Equal(250000, *vacancies[0].Salary.From)
	assert.Nil(vacancies[0].Salary.To)
	assert.Equal("2024-10-14T10:22:31+0300", *vacancies[0].PublishedAt)
	assert.Equal("Москва", *vacancies[0].Area.Name)

	assert.Nil(vacancies[1].Salary)
	assert.Equal("https://hh.ru/vacancy/108122273", *vacancies[1].Url)
}

func Test_HHClient_Non2xxStatus_ReturnsError(t *testing.T) {
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(stringResponse(http.StatusNotFound, `{"errors":[{"type":"not_found"}]}`), nil)

	client := NewClient()
	client.SetHTTPClient(mockClient)

	_, err := client.GetEmployer(context.Background(), "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func Test_HHClient_MalformedBody_ReturnsError(t *testing.T) {
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(stringResponse(http.StatusOK, `{"items": [`), nil)

	client := NewClient()
	client.SetHTTPClient(mockClient)

	_, err := client.GetEmployerVacancies(context.Background(), VacancyQuery{EmployerID: "1"})
	assert.Error(t, err)
}

func Test_HHClient_TransportError_ReturnsError(t *testing.T) {
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection refused"))

	client := NewClient()
	client.SetHTTPClient(mockClient)

	_, err := client.GetEmployer(context.Background(), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func Test_VacancyQuery_Validate(t *testing.T) {
	assert.Error(t, VacancyQuery{}.Validate())
	assert.Error(t, VacancyQuery{EmployerID: "1", PerPage: 101}.Validate())
	assert.NoError(t, VacancyQuery{EmployerID: "1", PerPage: 100}.Validate())
}
